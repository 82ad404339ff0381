package book

type CreateBookReq struct {
	Title  string  `json:"title" validate:"required"`
	Author string  `json:"author" validate:"required"`
	ISBN   *string `json:"isbn,omitempty" validate:"omitempty,min=10"`
}

type UpdateBookReq struct {
	Title  string  `json:"title" validate:"required"`
	Author string  `json:"author" validate:"required"`
	ISBN   *string `json:"isbn,omitempty" validate:"omitempty,min=10"`
}

type SetStatusReq struct {
	Status string `json:"status" validate:"required"`
}
