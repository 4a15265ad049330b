package request

type SearchUsersQuery struct {
	Q     string `form:"q" binding:"required,max=100"`
	Page  int    `form:"page" binding:"omitempty,min=1"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=200"`
}
