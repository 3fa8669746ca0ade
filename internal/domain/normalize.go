package domain

import "strings"

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

// trimOptional treats a blank optional value as absent.
func trimOptional(s *string) *string {
	v := trimPtr(s)
	if v == nil || *v == "" {
		return nil
	}
	return v
}
