package validator

// RegisterRequest is the sign-up form
type RegisterRequest struct {
	FirstName       string `json:"first_name" validate:"required"`
	LastName        string `json:"last_name" validate:"required"`
	PhoneNumber     string `json:"phone_number" validate:"required"`
	Email           string `json:"email" validate:"required,portal_email"`
	Institution     string `json:"institution" validate:"required"`
	Role            string `json:"role" validate:"required,user_role"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required,portal_email"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordRequest struct {
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

type ProfileUpdateRequest struct {
	FirstName   string `json:"first_name" validate:"required"`
	LastName    string `json:"last_name" validate:"required"`
	PhoneNumber string `json:"phone_number" validate:"required"`
	Email       string `json:"email" validate:"required,portal_email"`
	Institution string `json:"institution" validate:"required"`
}

// JobCreateRequest is the recruiter's new job form
type JobCreateRequest struct {
	Title       string   `json:"title" validate:"required,max=200"`
	CompanyName string   `json:"company_name" validate:"required,max=200"`
	Details     string   `json:"details" validate:"required"`
	Industry    string   `json:"industry" validate:"required,max=100"`
	CTC         string   `json:"ctc" validate:"required,max=50"`
	Openings    int      `json:"openings" validate:"min=0"`
	Skills      []string `json:"skills" validate:"required,min=1,dive,skill_tag,max=50"`
	DueDate     string   `json:"due_date" validate:"required,date_string"`
}

type SkillRequest struct {
	Skill string `json:"skill" validate:"required,skill_tag,max=100"`
}

type ProjectRequest struct {
	Name        string  `json:"name" validate:"required,max=200"`
	Description string  `json:"description" validate:"required"`
	URL         *string `json:"url" validate:"omitempty,url"`
	StartDate   string  `json:"start_date" validate:"required,date_string"`
	EndDate     string  `json:"end_date" validate:"required,date_string"`
}

type InternshipRequest struct {
	Company   string  `json:"company" validate:"required,max=200"`
	Position  string  `json:"position" validate:"required,max=200"`
	URL       *string `json:"url" validate:"omitempty,url"`
	StartDate string  `json:"start_date" validate:"required,date_string"`
	EndDate   string  `json:"end_date" validate:"required,date_string"`
}

type EducationRequest struct {
	College         string `json:"college" validate:"required,max=200"`
	Degree          string `json:"degree" validate:"required,max=100"`
	Department      string `json:"department" validate:"required,max=100"`
	CurrentSemester int    `json:"current_semester" validate:"min=1,max=12"`
	CurrentYear     int    `json:"current_year" validate:"min=1,max=6"`
	StartDate       string `json:"start_date" validate:"required,date_string"`
	EndDate         string `json:"end_date" validate:"required,date_string"`
}
