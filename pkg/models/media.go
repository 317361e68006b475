package models

import "mime/multipart"

type File struct {
	File multipart.File `json:"file,omitempty" validate:"required"`
}

type Url struct {
	Url string `json:"url,omitempty" validate:"required,url"`
}

type MediaUploadResult struct {
	SecureUrl string `json:"secureUrl"`
	PublicId  string `json:"publicId"`
}
