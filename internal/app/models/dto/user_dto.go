package dto

// UpdateProfileRequest represents a partial profile update. Only the
// whitelisted fields below can be changed; nil fields are left untouched.
type UpdateProfileRequest struct {
	FirstName      *string `json:"firstName,omitempty" binding:"omitempty,min=2,max=100"`
	LastName       *string `json:"lastName,omitempty" binding:"omitempty,min=2,max=100"`
	Major          *string `json:"major,omitempty"`
	Year           *string `json:"year,omitempty"`
	Bio            *string `json:"bio,omitempty"`
	GraduationYear *string `json:"graduationYear,omitempty"`
	Location       *string `json:"location,omitempty"`
}
