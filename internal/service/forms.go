package service

import "strings"

// ShareForm 邮件推荐表单
type ShareForm struct {
	Name     string `json:"name" form:"name" validate:"required,max=25"`
	Email    string `json:"email" form:"email" validate:"required,email"`
	To       string `json:"to" form:"to" validate:"required,email"`
	Comments string `json:"comments" form:"comments"`
}

func (f *ShareForm) clean() {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.To = strings.TrimSpace(f.To)
	f.Comments = strings.TrimSpace(f.Comments)
}

// CommentForm 评论表单
type CommentForm struct {
	Name  string `json:"name" form:"name" validate:"required,max=80"`
	Email string `json:"email" form:"email" validate:"required,email"`
	Body  string `json:"body" form:"body" validate:"required"`
}

func (f *CommentForm) clean() {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Body = strings.TrimSpace(f.Body)
}

// SearchForm 检索表单
type SearchForm struct {
	Query string `json:"query" form:"query" validate:"required"`
}

// OrderForm 下单表单
type OrderForm struct {
	FirstName  string `json:"first_name" form:"first_name" validate:"required,max=50"`
	LastName   string `json:"last_name" form:"last_name" validate:"required,max=50"`
	Email      string `json:"email" form:"email" validate:"required,email"`
	Address    string `json:"address" form:"address" validate:"required,max=250"`
	PostalCode string `json:"postal_code" form:"postal_code" validate:"required,max=20"`
	City       string `json:"city" form:"city" validate:"required,max=100"`
}

func (f *OrderForm) clean() {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Email = strings.TrimSpace(f.Email)
	f.Address = strings.TrimSpace(f.Address)
	f.PostalCode = strings.TrimSpace(f.PostalCode)
	f.City = strings.TrimSpace(f.City)
}
