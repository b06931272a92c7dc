package config

import (
	"fmt"
	"net/url"
	"reflect"
	"strings"
)

// PlaceholderPrefix marks values of the committed template that have to be replaced before
// deployment.
const PlaceholderPrefix string = "PLACEHOLDER_"

func IsPlaceholder(value string) bool {
	return strings.HasPrefix(value, PlaceholderPrefix)
}

var urlType = reflect.TypeOf(&url.URL{})

// walkSettings calls fn for every leaf of the configuration with its dotted key, in
// declaration order.
func walkSettings(v reflect.Value, prefix string, fn func(key string, value reflect.Value)) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name := field.Tag.Get("mapstructure")
		if name == "" {
			name = field.Name
		}
		key := name
		if prefix != "" {
			key = prefix + "." + name
		}
		value := v.Field(i)
		if value.Kind() == reflect.Struct {
			walkSettings(value, key, fn)
			continue
		}
		fn(key, value)
	}
}

// Placeholders returns the dotted keys of every field that still holds a placeholder value.
func (c *Config) Placeholders() []string {
	output := []string{}
	walkSettings(reflect.ValueOf(*c), "", func(key string, value reflect.Value) {
		switch value.Kind() {
		case reflect.String:
			if IsPlaceholder(value.String()) {
				output = append(output, key)
			}
		case reflect.Slice:
			for i := 0; i < value.Len(); i++ {
				item := value.Index(i)
				if item.Kind() == reflect.String && IsPlaceholder(item.String()) {
					output = append(output, fmt.Sprintf("%s[%d]", key, i))
				}
			}
		}
	})
	return output
}

// ActivePlaceholders is like Placeholders but skips the fields that the rest of the
// configuration makes irrelevant, for example the s3 credentials when files are stored locally.
func (c *Config) ActivePlaceholders() []string {
	inactive := c.inactivePrefixes()
	output := []string{}
	for _, key := range c.Placeholders() {
		skip := false
		for _, prefix := range inactive {
			if key == prefix || strings.HasPrefix(key, prefix+".") {
				skip = true
				break
			}
		}
		if !skip {
			output = append(output, key)
		}
	}
	return output
}

func (c *Config) inactivePrefixes() []string {
	output := []string{}
	if c.Storage.Type != StorageLocal {
		output = append(output, "storage.local")
	}
	if c.Storage.Type != StorageS3 {
		output = append(output, "storage.s3")
	}
	if c.Storage.Type != StorageGCS {
		output = append(output, "storage.gcs")
	}
	if c.Email.Provider == EmailSMTP {
		output = append(output, "email.apiKey")
	} else {
		output = append(output, "email.smtp")
	}
	if c.Development.MockPayments {
		output = append(output, "stripe")
	}
	return output
}
