// Package models contains the data shapes exchanged with the clinic-management
// backend: the two principal kinds (clinic staff and pet tutors), animals, and
// the scoped domain records.
package models

// Principal is the authenticated identity record returned by a profile
// endpoint. The two kinds have structurally different shapes but both expose
// a stable identifier and a display name.
type Principal interface {
	PrincipalID() int64
	DisplayName() string

	// Merge returns a copy of the principal with the non-nil patch fields
	// applied. The receiver is not modified.
	Merge(patch ProfilePatch) Principal
}

// ProfilePatch is a partial profile update. Nil fields are left untouched.
// It covers the fields editable from the profile pages of both kinds.
type ProfilePatch struct {
	Name    *string
	Email   *string
	Phone   *string
	Address *string
}

// ClinicProfile is the principal for clinic staff sessions.
type ClinicProfile struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

func (p ClinicProfile) PrincipalID() int64  { return p.ID }
func (p ClinicProfile) DisplayName() string { return p.Name }

func (p ClinicProfile) Merge(patch ProfilePatch) Principal {
	out := p
	if patch.Name != nil {
		out.Name = *patch.Name
	}
	if patch.Email != nil {
		out.Email = *patch.Email
	}
	if patch.Phone != nil {
		out.Phone = *patch.Phone
	}
	if patch.Address != nil {
		out.Address = *patch.Address
	}
	return out
}

// ClientProfile is the principal for pet-tutor sessions.
type ClientProfile struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func (p ClientProfile) PrincipalID() int64  { return p.ID }
func (p ClientProfile) DisplayName() string { return p.Name }

func (p ClientProfile) Merge(patch ProfilePatch) Principal {
	out := p
	if patch.Name != nil {
		out.Name = *patch.Name
	}
	if patch.Email != nil {
		out.Email = *patch.Email
	}
	if patch.Phone != nil {
		out.Phone = *patch.Phone
	}
	return out
}
