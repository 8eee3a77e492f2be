package catalog

import "fmt"

// ErrorKind distinguishes the ways loading the catalog can fail.
type ErrorKind int

const (
	KindNotFound ErrorKind = iota + 1
	KindUnreadable
	KindSyntax
	KindStructure
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindUnreadable:
		return "unreadable"
	case KindSyntax:
		return "syntax"
	case KindStructure:
		return "structure"
	}
	return "unknown"
}

// ConfigError reports a catalog that could not be loaded.
type ConfigError struct {
	Kind ErrorKind
	Path string
	// Line is set for syntax errors.
	Line int
	Err  error
}

func (e *ConfigError) Error() string {
	name := e.Path
	if name == "" {
		name = DefaultFile
	}
	switch e.Kind {
	case KindNotFound:
		return fmt.Sprintf("catalog file not found: %s", name)
	case KindUnreadable:
		return fmt.Sprintf("cannot read catalog %s: %v", name, e.Err)
	case KindSyntax:
		if e.Line > 0 {
			return fmt.Sprintf("error reading %s at line %d: %v", name, e.Line, e.Err)
		}
		return fmt.Sprintf("error reading %s: %v", name, e.Err)
	case KindStructure:
		return fmt.Sprintf("invalid structure in %s: %v", name, e.Err)
	}
	return fmt.Sprintf("catalog %s: %v", name, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Hint returns a remediation message for the user.
func (e *ConfigError) Hint() string {
	switch e.Kind {
	case KindNotFound:
		return "Make sure " + DefaultFile + " is in the program directory, or pass --catalog."
	case KindUnreadable:
		return "Check the file permissions of the catalog."
	case KindSyntax:
		return "The catalog is not valid JSON. Fix the reported line or restore the original file."
	case KindStructure:
		return `The catalog must be an object with "consoles" and "brands" arrays.`
	}
	return ""
}
