package memory

import (
	"cmp"
	"context"
	"slices"

	"caredesk/internal/domain"
)

// newestFirst orders by creation time, then id, both descending.
func newestFirst[T any](items []*T, key func(*T) (int64, int64)) {
	slices.SortFunc(items, func(a, b *T) int {
		ta, ia := key(a)
		tb, ib := key(b)
		if c := cmp.Compare(tb, ta); c != 0 {
			return c
		}
		return cmp.Compare(ib, ia)
	})
}

// -- Users --

type UserRepository struct{ s *Store }

func NewUserRepository(s *Store) domain.UserRepository { return &UserRepository{s: s} }

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	defer r.s.lock(ctx)()

	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) GetByID(ctx context.Context, userID int64) (*domain.User, error) {
	defer r.s.lock(ctx)()

	u, ok := r.s.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	defer r.s.lock(ctx)()

	for _, u := range r.s.users {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}

	user.ID = r.s.nextID()
	user.CreatedAt = r.s.stamp()
	user.UpdatedAt = user.CreatedAt
	r.s.users[user.ID] = *user
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, userID int64) error {
	defer r.s.lock(ctx)()

	if _, ok := r.s.users[userID]; !ok {
		return domain.ErrUserNotFound
	}

	delete(r.s.users, userID)
	for id, p := range r.s.patients {
		if p.UserID == userID {
			r.s.deletePatientLocked(id)
		}
	}
	return nil
}

// -- Patients --

type PatientRepository struct{ s *Store }

func NewPatientRepository(s *Store) domain.PatientRepository { return &PatientRepository{s: s} }

func (r *PatientRepository) List(ctx context.Context, ownerID int64) ([]*domain.Patient, error) {
	defer r.s.lock(ctx)()

	out := []*domain.Patient{}
	for _, p := range r.s.patients {
		if p.UserID == ownerID {
			out = append(out, &p)
		}
	}
	newestFirst(out, func(p *domain.Patient) (int64, int64) { return p.CreatedAt.UnixNano(), p.ID })
	return out, nil
}

func (r *PatientRepository) GetByID(ctx context.Context, ownerID, patientID int64) (*domain.Patient, error) {
	defer r.s.lock(ctx)()

	p, ok := r.s.patients[patientID]
	if !ok || p.UserID != ownerID {
		return nil, domain.ErrPatientNotFound
	}
	return &p, nil
}

func (r *PatientRepository) Create(ctx context.Context, p *domain.Patient) error {
	defer r.s.lock(ctx)()

	if _, ok := r.s.users[p.UserID]; !ok {
		return domain.ErrUserNotFound
	}

	p.ID = r.s.nextID()
	p.CreatedAt = r.s.stamp()
	p.UpdatedAt = p.CreatedAt
	r.s.patients[p.ID] = *p
	return nil
}

func (r *PatientRepository) Update(ctx context.Context, ownerID int64, p *domain.Patient) error {
	defer r.s.lock(ctx)()

	current, ok := r.s.patients[p.ID]
	if !ok || current.UserID != ownerID {
		return domain.ErrPatientNotFound
	}

	p.UserID = current.UserID
	p.CreatedAt = current.CreatedAt
	p.UpdatedAt = r.s.now()
	r.s.patients[p.ID] = *p
	return nil
}

func (r *PatientRepository) Delete(ctx context.Context, ownerID, patientID int64) error {
	defer r.s.lock(ctx)()

	p, ok := r.s.patients[patientID]
	if !ok || p.UserID != ownerID {
		return domain.ErrPatientNotFound
	}

	r.s.deletePatientLocked(patientID)
	return nil
}

// -- Doctors --

type DoctorRepository struct{ s *Store }

func NewDoctorRepository(s *Store) domain.DoctorRepository { return &DoctorRepository{s: s} }

func (r *DoctorRepository) List(ctx context.Context) ([]*domain.Doctor, error) {
	defer r.s.lock(ctx)()

	out := make([]*domain.Doctor, 0, len(r.s.doctors))
	for _, d := range r.s.doctors {
		out = append(out, &d)
	}
	newestFirst(out, func(d *domain.Doctor) (int64, int64) { return d.CreatedAt.UnixNano(), d.ID })
	return out, nil
}

func (r *DoctorRepository) GetByID(ctx context.Context, doctorID int64) (*domain.Doctor, error) {
	defer r.s.lock(ctx)()

	d, ok := r.s.doctors[doctorID]
	if !ok {
		return nil, domain.ErrDoctorNotFound
	}
	return &d, nil
}

func (r *DoctorRepository) Create(ctx context.Context, d *domain.Doctor) error {
	defer r.s.lock(ctx)()

	d.ID = r.s.nextID()
	d.CreatedAt = r.s.stamp()
	d.UpdatedAt = d.CreatedAt
	r.s.doctors[d.ID] = *d
	return nil
}

func (r *DoctorRepository) Update(ctx context.Context, d *domain.Doctor) error {
	defer r.s.lock(ctx)()

	current, ok := r.s.doctors[d.ID]
	if !ok {
		return domain.ErrDoctorNotFound
	}

	d.CreatedAt = current.CreatedAt
	d.UpdatedAt = r.s.now()
	r.s.doctors[d.ID] = *d
	return nil
}

func (r *DoctorRepository) Delete(ctx context.Context, doctorID int64) error {
	defer r.s.lock(ctx)()

	if _, ok := r.s.doctors[doctorID]; !ok {
		return domain.ErrDoctorNotFound
	}

	delete(r.s.doctors, doctorID)
	for id, a := range r.s.assignments {
		if a.DoctorID == doctorID {
			delete(r.s.assignments, id)
		}
	}
	return nil
}

// -- Assignments --

type AssignmentRepository struct{ s *Store }

func NewAssignmentRepository(s *Store) domain.AssignmentRepository {
	return &AssignmentRepository{s: s}
}

func (r *AssignmentRepository) Exists(ctx context.Context, patientID, doctorID int64) (bool, error) {
	defer r.s.lock(ctx)()

	return r.existsLocked(patientID, doctorID), nil
}

func (r *AssignmentRepository) existsLocked(patientID, doctorID int64) bool {
	for _, a := range r.s.assignments {
		if a.PatientID == patientID && a.DoctorID == doctorID {
			return true
		}
	}
	return false
}

func (r *AssignmentRepository) Create(ctx context.Context, a *domain.Assignment) error {
	defer r.s.lock(ctx)()

	if _, ok := r.s.patients[a.PatientID]; !ok {
		return domain.ErrPatientNotFound
	}
	if _, ok := r.s.doctors[a.DoctorID]; !ok {
		return domain.ErrDoctorNotFound
	}
	if r.existsLocked(a.PatientID, a.DoctorID) {
		return domain.ErrDuplicateAssignment
	}

	a.ID = r.s.nextID()
	a.CreatedAt = r.s.stamp()
	a.UpdatedAt = a.CreatedAt
	r.s.assignments[a.ID] = domain.Assignment{
		ID:        a.ID,
		PatientID: a.PatientID,
		DoctorID:  a.DoctorID,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
	return nil
}

func (r *AssignmentRepository) GetByID(ctx context.Context, assignmentID int64) (*domain.Assignment, error) {
	defer r.s.lock(ctx)()

	a, ok := r.s.assignments[assignmentID]
	if !ok {
		return nil, domain.ErrAssignmentNotFound
	}

	p, ok := r.s.patients[a.PatientID]
	if !ok {
		return nil, domain.ErrAssignmentNotFound
	}

	a.OwnerID = p.UserID
	a.Patient = domain.NewPatientSummary(&p)
	return &a, nil
}

func (r *AssignmentRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Assignment, error) {
	defer r.s.lock(ctx)()

	out := []*domain.Assignment{}
	for _, a := range r.s.assignments {
		p, ok := r.s.patients[a.PatientID]
		if !ok || p.UserID != ownerID {
			continue
		}
		d, ok := r.s.doctors[a.DoctorID]
		if !ok {
			continue
		}

		a.OwnerID = ownerID
		a.Patient = domain.NewPatientSummary(&p)
		a.Doctor = domain.NewDoctorSummary(&d)
		a.Doctor.Experience = nil
		out = append(out, &a)
	}

	newestFirst(out, func(a *domain.Assignment) (int64, int64) { return a.CreatedAt.UnixNano(), a.ID })
	return out, nil
}

func (r *AssignmentRepository) ListByPatient(ctx context.Context, patientID int64) ([]*domain.Assignment, error) {
	defer r.s.lock(ctx)()

	out := []*domain.Assignment{}
	for _, a := range r.s.assignments {
		if a.PatientID != patientID {
			continue
		}
		d, ok := r.s.doctors[a.DoctorID]
		if !ok {
			continue
		}

		a.Doctor = domain.NewDoctorSummary(&d)
		out = append(out, &a)
	}

	newestFirst(out, func(a *domain.Assignment) (int64, int64) { return a.CreatedAt.UnixNano(), a.ID })
	return out, nil
}

func (r *AssignmentRepository) Delete(ctx context.Context, assignmentID int64) error {
	defer r.s.lock(ctx)()

	if _, ok := r.s.assignments[assignmentID]; !ok {
		return domain.ErrAssignmentNotFound
	}

	delete(r.s.assignments, assignmentID)
	return nil
}
