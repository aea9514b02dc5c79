package domain

// OnboardingProfile is the device-local profile captured by the onboarding
// form. Field names follow the stored JSON blob.
type OnboardingProfile struct {
	FullName         string   `json:"fullName" yaml:"fullName" validate:"min=2,max=50,letters"`
	Age              string   `json:"age" yaml:"age" validate:"required,digits,intgte=13,intlte=120"`
	AddressLine1     string   `json:"addressLine1" yaml:"addressLine1" validate:"min=5,max=100"`
	AddressLine2     string   `json:"addressLine2,omitempty" yaml:"addressLine2" validate:"omitempty,max=100"`
	ZipCode          string   `json:"zipCode" yaml:"zipCode" validate:"zipcode"`
	Email            string   `json:"email" yaml:"email" validate:"required,email"`
	Phone            string   `json:"phone" yaml:"phone" validate:"min=10,phone"`
	EmergencyContact string   `json:"emergencyContact" yaml:"emergencyContact" validate:"min=2,max=50,letters"`
	EmergencyPhone   string   `json:"emergencyPhone" yaml:"emergencyPhone" validate:"min=10,phone"`
	Skills           []string `json:"skills" yaml:"skills" validate:"min=1"`
	Interests        []string `json:"interests" yaml:"interests" validate:"min=1"`
}

// ProfilePatch carries a partial profile update; nil fields are left as-is.
type ProfilePatch struct {
	FullName         *string  `json:"fullName,omitempty"`
	Age              *string  `json:"age,omitempty"`
	AddressLine1     *string  `json:"addressLine1,omitempty"`
	AddressLine2     *string  `json:"addressLine2,omitempty"`
	ZipCode          *string  `json:"zipCode,omitempty"`
	Email            *string  `json:"email,omitempty"`
	Phone            *string  `json:"phone,omitempty"`
	EmergencyContact *string  `json:"emergencyContact,omitempty"`
	EmergencyPhone   *string  `json:"emergencyPhone,omitempty"`
	Skills           []string `json:"skills,omitempty"`
	Interests        []string `json:"interests,omitempty"`
}

// Apply returns a copy of p with the patch's non-nil fields merged in.
func (patch ProfilePatch) Apply(p OnboardingProfile) OnboardingProfile {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&p.FullName, patch.FullName)
	set(&p.Age, patch.Age)
	set(&p.AddressLine1, patch.AddressLine1)
	set(&p.AddressLine2, patch.AddressLine2)
	set(&p.ZipCode, patch.ZipCode)
	set(&p.Email, patch.Email)
	set(&p.Phone, patch.Phone)
	set(&p.EmergencyContact, patch.EmergencyContact)
	set(&p.EmergencyPhone, patch.EmergencyPhone)
	if patch.Skills != nil {
		p.Skills = patch.Skills
	}
	if patch.Interests != nil {
		p.Interests = patch.Interests
	}
	return p
}
