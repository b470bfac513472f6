package event

// ChangeStatusDTO carries an admin status override request. Reason is
// optional and stored verbatim, including empty.
type ChangeStatusDTO struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

func (dto ChangeStatusDTO) Validate() (Status, error) {
	return ParseStatus(dto.Status)
}

// ListFilter narrows event listings. Zero values mean no filtering.
type ListFilter struct {
	Status string
	Search string
}
