// SPDX-FileCopyrightText: Copyright 2026 Skillmesh, Inc.
// SPDX-License-Identifier: Apache-2.0

package specifier

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want Spec
	}{
		{
			name: "bare skill slug",
			raw:  "web-search",
			want: Spec{Kind: KindSkill, Slug: "web-search", Operator: OpLatest},
		},
		{
			name: "bare role slug",
			raw:  "role:code-reviewer",
			want: Spec{Kind: KindRole, Slug: "code-reviewer", Operator: OpLatest},
		},
		{
			name: "exact version",
			raw:  "web-search==1.2.3",
			want: Spec{Kind: KindSkill, Slug: "web-search", Operator: OpExact, Version: "1.2.3"},
		},
		{
			name: "at least version",
			raw:  "role:triage>=0.4.0",
			want: Spec{Kind: KindRole, Slug: "triage", Operator: OpAtLeast, Version: "0.4.0"},
		},
		{
			name: "compatible version",
			raw:  "summarize^2.0.0",
			want: Spec{Kind: KindSkill, Slug: "summarize", Operator: OpCompatible, Version: "2.0.0"},
		},
		{
			name: "surrounding whitespace trimmed",
			raw:  "  web-search>=1.0.0  ",
			want: Spec{Kind: KindSkill, Slug: "web-search", Operator: OpAtLeast, Version: "1.0.0"},
		},
		{
			name: "numeric leading character",
			raw:  "3d-render",
			want: Spec{Kind: KindSkill, Slug: "3d-render", Operator: OpLatest},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Parse(tt.raw)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty string", raw: ""},
		{name: "whitespace only", raw: "   "},
		{name: "punctuation", raw: "!!!invalid"},
		{name: "uppercase slug", raw: "Web-Search"},
		{name: "leading hyphen", raw: "-web-search"},
		{name: "unsupported tilde operator", raw: "web-search~1.2.3"},
		{name: "two-part version", raw: "web-search==1.2"},
		{name: "four-part version", raw: "web-search==1.2.3.4"},
		{name: "bare role prefix", raw: "role:"},
		{name: "internal whitespace", raw: "web search"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse(tt.raw)
			var invalidErr *InvalidSpecifierError
			require.ErrorAs(t, err, &invalidErr)
			require.Contains(t, err.Error(), "invalid dependency specifier")
		})
	}
}

func TestSpec_String_RoundTrip(t *testing.T) {
	t.Parallel()

	raws := []string{
		"web-search",
		"role:code-reviewer",
		"web-search==1.2.3",
		"role:triage>=0.4.0",
		"summarize^2.0.0",
	}

	for _, raw := range raws {
		t.Run(raw, func(t *testing.T) {
			t.Parallel()

			spec, err := Parse(raw)
			require.NoError(t, err)
			require.Equal(t, raw, spec.String())

			again, err := Parse(spec.String())
			require.NoError(t, err)
			require.Equal(t, spec, again)
		})
	}
}

func TestSpec_Key(t *testing.T) {
	t.Parallel()

	skill, err := Parse("web-search")
	require.NoError(t, err)
	require.Equal(t, "skill:web-search", skill.Key())

	role, err := Parse("role:web-search")
	require.NoError(t, err)
	require.Equal(t, "role:web-search", role.Key())
	require.NotEqual(t, skill.Key(), role.Key())
}

func TestExtractSlug(t *testing.T) {
	t.Parallel()

	t.Run("returns slug", func(t *testing.T) {
		t.Parallel()

		slug, err := ExtractSlug("role:triage>=0.4.0")
		require.NoError(t, err)
		require.Equal(t, "triage", slug)
	})

	t.Run("propagates parse error", func(t *testing.T) {
		t.Parallel()

		_, err := ExtractSlug("!!!")
		var invalidErr *InvalidSpecifierError
		require.True(t, errors.As(err, &invalidErr))
	})
}

func TestSplitDependencies(t *testing.T) {
	t.Parallel()

	t.Run("partitions by prefix", func(t *testing.T) {
		t.Parallel()

		got := SplitDependencies([]string{
			"web-search",
			"role:code-reviewer>=1.0.0",
			"summarize^2.0.0",
			"role:triage",
		})
		require.Equal(t, []string{"web-search", "summarize^2.0.0"}, got.Skills)
		require.Equal(t, []string{"code-reviewer>=1.0.0", "triage"}, got.Roles)
	})

	t.Run("does not validate entries", func(t *testing.T) {
		t.Parallel()

		got := SplitDependencies([]string{"!!!not-a-spec", "role:ALSO BAD"})
		require.Equal(t, []string{"!!!not-a-spec"}, got.Skills)
		require.Equal(t, []string{"ALSO BAD"}, got.Roles)
	})

	t.Run("drops blank entries", func(t *testing.T) {
		t.Parallel()

		got := SplitDependencies([]string{"", "  ", "web-search"})
		require.Equal(t, []string{"web-search"}, got.Skills)
		require.Empty(t, got.Roles)
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()

		got := SplitDependencies(nil)
		require.Empty(t, got.Skills)
		require.Empty(t, got.Roles)
	})
}
