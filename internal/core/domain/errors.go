package domain

import "errors"

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrAdNotFound = errors.New("ad not found")
var ErrAssetNotFound = errors.New("asset not found")
var ErrAssetExists = errors.New("asset key already exists")
var ErrForbidden = errors.New("access forbidden")
var ErrUnsupportedLanguage = errors.New("unsupported language code")
