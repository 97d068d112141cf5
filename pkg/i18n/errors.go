package i18n

import "errors"

var (
	ErrNilAdapter          = errors.New("translation adapter is nil")
	ErrFailedToParseJSON   = errors.New("failed to parse JSON translations")
	ErrFailedToParseYAML   = errors.New("failed to parse YAML translations")
	ErrInvalidStructure    = errors.New("translations must map a language code to a map of keys")
	ErrUnsupportedFile     = errors.New("unsupported translation file extension")
	ErrFailedToReadFile    = errors.New("failed to read translation file")
	ErrFailedToReadDir     = errors.New("failed to read translation directory")
	ErrInvalidLanguageCode = errors.New("invalid language code")
)
