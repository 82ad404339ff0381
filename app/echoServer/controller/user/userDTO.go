package user

type CreateUserReq struct {
	FirstName string  `json:"first_name" validate:"required"`
	LastName  string  `json:"last_name" validate:"required"`
	Grade     *string `json:"grade,omitempty"`
}

type UpdateUserReq struct {
	FirstName string  `json:"first_name" validate:"required"`
	LastName  string  `json:"last_name" validate:"required"`
	Grade     *string `json:"grade,omitempty"`
}
