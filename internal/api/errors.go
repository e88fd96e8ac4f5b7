package api

import "errors"

// 请求校验错误定义
var (
	errInvalidProductID = errors.New("product_id must be positive")
	errColorRequired    = errors.New("color is required")
	errSizeRequired     = errors.New("size is required")
)

// 表单校验错误定义
var (
	errInvalidAuthMode  = errors.New("mode must be signin or signup")
	errEmailRequired    = errors.New("email is required")
	errEmailInvalid     = errors.New("email is invalid")
	errPasswordRequired = errors.New("password is required")
	errNameRequired     = errors.New("name is required")
)
