package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

const (
	constraintUsersEmail        = "users_email_unique"
	constraintAssignmentPair    = "patient_doctors_pair_unique"
	constraintAssignmentPatient = "patient_doctors_patient_id_fkey"
	constraintAssignmentDoctor  = "patient_doctors_doctor_id_fkey"
	constraintPatientUser       = "patients_user_id_fkey"
)

func pgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

func isUniqueViolation(err error, constraint string) bool {
	pgErr, ok := pgError(err)
	return ok && pgErr.Code == codeUniqueViolation && pgErr.ConstraintName == constraint
}

func isForeignKeyViolation(err error, constraint string) bool {
	pgErr, ok := pgError(err)
	return ok && pgErr.Code == codeForeignKeyViolation && pgErr.ConstraintName == constraint
}
