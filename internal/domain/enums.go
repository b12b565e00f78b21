package domain

// Source identifies the lookup tier that produced a DictionaryEntry.
type Source string

const (
	SourceGlossary Source = "glossary"
	SourceDatabase Source = "database"
	SourceLocal    Source = "local"
	SourceExternal Source = "external"
	SourceFallback Source = "fallback"
	SourceNotFound Source = "not_found"
)

func (s Source) String() string { return string(s) }

func (s Source) IsValid() bool {
	switch s {
	case SourceGlossary, SourceDatabase, SourceLocal, SourceExternal, SourceFallback, SourceNotFound:
		return true
	}
	return false
}

// Found reports whether the source represents an actual definition.
func (s Source) Found() bool {
	return s.IsValid() && s != SourceNotFound
}

// UserRole is the role claim carried by a Supabase access token.
type UserRole string

const (
	UserRoleAnon          UserRole = "anon"
	UserRoleAuthenticated UserRole = "authenticated"
	UserRoleAdmin         UserRole = "admin"
	UserRoleService       UserRole = "service_role"
)

func (r UserRole) String() string { return string(r) }

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleAnon, UserRoleAuthenticated, UserRoleAdmin, UserRoleService:
		return true
	}
	return false
}

// IsAdmin reports whether the role may run operator actions such as cache clears.
func (r UserRole) IsAdmin() bool {
	return r == UserRoleAdmin || r == UserRoleService
}
