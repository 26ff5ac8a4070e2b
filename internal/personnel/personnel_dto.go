package personnel

type CreatePersonnelRequest struct {
	Number                string  `json:"number"`
	FullName              string  `json:"full_name" binding:"required"`
	Email                 string  `json:"email" binding:"required,email"`
	Phone                 *string `json:"phone"`
	ScheduledStartMinutes *int    `json:"scheduled_start_minutes"`
}

type UpdatePersonnelRequest struct {
	FullName              string  `json:"full_name" binding:"required"`
	Email                 string  `json:"email" binding:"required,email"`
	Phone                 *string `json:"phone"`
	Active                *bool   `json:"active"`
	ScheduledStartMinutes *int    `json:"scheduled_start_minutes"`
}

type PersonnelResponse struct {
	ID                    string  `json:"id"`
	Number                string  `json:"number"`
	FullName              string  `json:"full_name"`
	Email                 string  `json:"email"`
	Phone                 *string `json:"phone,omitempty"`
	Active                bool    `json:"active"`
	ScheduledStartMinutes *int    `json:"scheduled_start_minutes,omitempty"`
}

// PersonnelOption adalah bentuk ringan untuk dropdown pemilihan karyawan di UI.
type PersonnelOption struct {
	ID       string `json:"id"`
	Number   string `json:"number"`
	FullName string `json:"full_name"`
}
