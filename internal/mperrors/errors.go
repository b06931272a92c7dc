// Package mperrors contains all common errors used by the marketplace.
package mperrors

import "fmt"

var ErrConfigNotFound = fmt.Errorf("the configuration file cannot be found")
var ErrInvalidConfig = fmt.Errorf("the configuration is not valid")
var ErrPlaceholderValue = fmt.Errorf("the configuration still contains placeholder values")
var ErrRateLimited = fmt.Errorf("too many requests, please try again later")
