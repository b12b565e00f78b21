package domain

import "testing"

func TestSource_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		source Source
		want   bool
	}{
		{SourceGlossary, true},
		{SourceDatabase, true},
		{SourceLocal, true},
		{SourceExternal, true},
		{SourceFallback, true},
		{SourceNotFound, true},
		{Source("cache"), false},
		{Source(""), false},
	}
	for _, tt := range tests {
		t.Run(string(tt.source), func(t *testing.T) {
			t.Parallel()
			if got := tt.source.IsValid(); got != tt.want {
				t.Errorf("Source(%q).IsValid() = %v, want %v", tt.source, got, tt.want)
			}
		})
	}
}

func TestSource_Found(t *testing.T) {
	t.Parallel()

	if SourceNotFound.Found() {
		t.Error("not_found must not count as found")
	}
	if !SourceExternal.Found() {
		t.Error("external must count as found")
	}
	if Source("bogus").Found() {
		t.Error("invalid source must not count as found")
	}
}

func TestUserRole_IsAdmin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		role UserRole
		want bool
	}{
		{UserRoleAnon, false},
		{UserRoleAuthenticated, false},
		{UserRoleAdmin, true},
		{UserRoleService, true},
		{UserRole("root"), false},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			t.Parallel()
			if got := tt.role.IsAdmin(); got != tt.want {
				t.Errorf("UserRole(%q).IsAdmin() = %v, want %v", tt.role, got, tt.want)
			}
		})
	}
}

func TestLogLevel_IsValid(t *testing.T) {
	t.Parallel()

	for _, l := range []LogLevel{LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError} {
		if !l.IsValid() {
			t.Errorf("LogLevel(%q).IsValid() = false, want true", l)
		}
	}
	if LogLevel("fatal").IsValid() {
		t.Error(`LogLevel("fatal").IsValid() = true, want false`)
	}
}
