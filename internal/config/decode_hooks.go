package config

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
)

func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		parseDuration(),
		mapstructure.StringToSliceHookFunc(","),
		parseByteSize(),
		parseSSLMode(),
		// has to stay last, an empty url decodes to nil and the composed hooks cannot take nil
		parseStringAsURL(),
	)
}

func parseStringAsURL() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data any) (interface{}, error) {
		// Check that the data is string
		if f.Kind() != reflect.String {
			return data, nil
		}

		// Check that the target type is our custom type
		if t != urlType {
			return data, nil
		}

		// Return the parsed value
		dataStr, ok := data.(string)
		if !ok {
			return nil, fmt.Errorf("cannot cast URL value to string")
		}
		// an empty url is left unset and reported by the validation
		if dataStr == "" {
			return nil, nil
		}
		url, err := url.Parse(dataStr)
		if err != nil {
			return nil, err
		}
		return url, nil
	}
}

func parseByteSize() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data any) (interface{}, error) {
		if t != reflect.TypeOf(ByteSize(0)) || f.Kind() != reflect.String {
			return data, nil
		}
		dataStr, ok := data.(string)
		if !ok {
			return nil, fmt.Errorf("cannot cast size value to string")
		}
		size, err := ParseByteSize(dataStr)
		if err != nil {
			return nil, err
		}
		return int64(size), nil
	}
}

// parseSSLMode accepts the boolean form of the ssl setting.
func parseSSLMode() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data any) (interface{}, error) {
		if t != reflect.TypeOf(SSLMode("")) {
			return data, nil
		}
		switch v := data.(type) {
		case bool:
			if v {
				return string(SSLRequire), nil
			}
			return string(SSLDisable), nil
		case string:
			mode := strings.ToLower(strings.TrimSpace(v))
			switch mode {
			case "false":
				return string(SSLDisable), nil
			case "true":
				return string(SSLRequire), nil
			}
			return mode, nil
		}
		return data, nil
	}
}

// parseDuration accepts go durations ("24h"), whole days ("7d") and plain integers, which
// count seconds.
func parseDuration() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data any) (interface{}, error) {
		if t != reflect.TypeOf(time.Duration(0)) {
			return data, nil
		}
		switch f.Kind() {
		case reflect.String:
			dataStr, ok := data.(string)
			if !ok {
				return nil, fmt.Errorf("cannot cast duration value to string")
			}
			return ParseDuration(dataStr)
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return time.Duration(reflect.ValueOf(data).Int()) * time.Second, nil
		}
		return data, nil
	}
}

func ParseDuration(s string) (time.Duration, error) {
	value := strings.TrimSpace(s)
	if days, ok := strings.CutSuffix(value, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil {
			return 0, fmt.Errorf("cannot parse duration %q: %w", s, err)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second, nil
	}
	return time.ParseDuration(value)
}
