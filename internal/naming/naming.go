// Package naming translates between on-disk page filenames and canonical
// entity names.
//
// Two filename encodings are special:
//   - a stem ending in "_asterisk" documents a wildcard family and maps to a
//     pattern key ("sp_sv_sound_asterisk" -> "sp_sv_sound_*")
//   - a stem starting with "dot_" stores a dot-prefixed command alias
//     ("dot_yes" stores both "dot_yes" and ".yes")
package naming

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// wildcardToken marks a wildcard-family page filename.
	wildcardToken = "_asterisk"

	// aliasToken replaces the leading dot of a command alias in filenames.
	aliasToken = "dot_"
)

// ErrMalformedName indicates a page filename whose encoding cannot be
// resolved unambiguously.
var ErrMalformedName = errors.New("malformed page filename")

// Kind distinguishes the three filename encodings.
type Kind int

const (
	// KindLiteral maps the filename stem directly to the entity name.
	KindLiteral Kind = iota

	// KindWildcardFamily documents a class of runtime names sharing a
	// prefix/suffix pattern. The pattern itself is the canonical key.
	KindWildcardFamily

	// KindAlias stores a dot-prefixed command under a transformed filename.
	KindAlias
)

func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "literal"
	case KindWildcardFamily:
		return "wildcard_family"
	case KindAlias:
		return "alias"
	default:
		return "unknown"
	}
}

// Resolution is the resolved identity of a page filename stem.
type Resolution struct {
	Kind Kind

	// Name is the canonical entity name. For alias pages this is the stored
	// name ("dot_yes"); the dot-prefixed alias is in Alias.
	Name string

	// Alias is the dot-prefixed command name (KindAlias only).
	Alias string

	// Pattern is the wildcard pattern key (KindWildcardFamily only).
	Pattern string
}

// Resolve classifies a filename stem (filename without extension).
//
// Malformed encodings return ErrMalformedName rather than a guess: a stem
// carrying both markers, a marker with nothing around it, or a wildcard
// token in the middle of the stem is ambiguous.
func Resolve(stem string) (Resolution, error) {
	if stem == "" {
		return Resolution{}, fmt.Errorf("%w: empty stem", ErrMalformedName)
	}

	isAlias := strings.HasPrefix(stem, aliasToken)
	isWildcard := strings.HasSuffix(stem, wildcardToken)

	if isAlias && isWildcard {
		return Resolution{}, fmt.Errorf("%w: %q mixes alias and wildcard encodings", ErrMalformedName, stem)
	}

	if isWildcard {
		base := strings.TrimSuffix(stem, wildcardToken)
		if base == "" {
			return Resolution{}, fmt.Errorf("%w: %q has no name before the wildcard token", ErrMalformedName, stem)
		}
		if strings.Contains(base, wildcardToken) {
			return Resolution{}, fmt.Errorf("%w: %q repeats the wildcard token", ErrMalformedName, stem)
		}
		return Resolution{
			Kind:    KindWildcardFamily,
			Name:    stem,
			Pattern: base + "_*",
		}, nil
	}

	// A wildcard token anywhere but the end is undecidable.
	if strings.Contains(stem, wildcardToken) {
		return Resolution{}, fmt.Errorf("%w: %q has a wildcard token in the middle", ErrMalformedName, stem)
	}

	if isAlias {
		rest := strings.TrimPrefix(stem, aliasToken)
		if rest == "" {
			return Resolution{}, fmt.Errorf("%w: %q has no name after the alias token", ErrMalformedName, stem)
		}
		return Resolution{
			Kind:  KindAlias,
			Name:  stem,
			Alias: "." + rest,
		}, nil
	}

	return Resolution{Kind: KindLiteral, Name: stem}, nil
}

// Filename is the inverse of Resolve: it returns the filename stem that
// stores the given canonical name.
func Filename(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: empty name", ErrMalformedName)
	}
	if strings.HasPrefix(name, ".") {
		rest := strings.TrimPrefix(name, ".")
		if rest == "" || strings.Contains(rest, "*") {
			return "", fmt.Errorf("%w: %q", ErrMalformedName, name)
		}
		return aliasToken + rest, nil
	}
	if strings.Contains(name, "*") {
		if !strings.HasSuffix(name, "_*") || strings.Count(name, "*") != 1 {
			return "", fmt.Errorf("%w: wildcard must be a trailing _* in %q", ErrMalformedName, name)
		}
		return strings.TrimSuffix(name, "_*") + wildcardToken, nil
	}
	return name, nil
}

// IsPattern reports whether a canonical name is a wildcard pattern key.
func IsPattern(name string) bool {
	return strings.Contains(name, "*")
}

// MatchPattern reports whether a concrete runtime name is contained in a
// wildcard pattern key. Matching is prefix/suffix containment around the
// single star.
func MatchPattern(pattern, name string) bool {
	i := strings.IndexByte(pattern, '*')
	if i < 0 {
		return pattern == name
	}
	prefix, suffix := pattern[:i], pattern[i+1:]
	return len(name) >= len(prefix)+len(suffix) &&
		strings.HasPrefix(name, prefix) &&
		strings.HasSuffix(name, suffix)
}
