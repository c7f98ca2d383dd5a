// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package cbc

import (
	"testing"
)

func assessWith(t *testing.T, params map[Parameter]*float64) Assessment {
	t.Helper()

	age := 30
	sex := SexMale

	return Assess(params, &age, &sex, nil)
}

func TestCorrelations(t *testing.T) {
	t.Parallel()

	t.Run("microcytic anemia", func(t *testing.T) {
		t.Parallel()

		result := assessWith(t, map[Parameter]*float64{
			ParamHemoglobin: ptr(9.0),
			ParamMCV:        ptr(70.0),
		})

		assertContains(t, Correlations(result), "Microcytic anemia (possible iron deficiency).")
	})

	t.Run("macrocytic anemia", func(t *testing.T) {
		t.Parallel()

		result := assessWith(t, map[Parameter]*float64{
			ParamHemoglobin: ptr(9.0),
			ParamMCV:        ptr(110.0),
		})

		assertContains(t, Correlations(result), "Macrocytic anemia (possible B12/Folate deficiency).")
	})

	t.Run("bacterial infection pattern", func(t *testing.T) {
		t.Parallel()

		result := assessWith(t, map[Parameter]*float64{
			ParamLeukocytes:  ptr(15000.0),
			ParamNeutrophils: ptr(90.0),
		})

		hints := Correlations(result)
		assertContains(t, hints, "Suggestive of bacterial infection.")
		assertContains(t, hints, "High NEUTROPHILS count.")
	})

	t.Run("thrombocytopenia", func(t *testing.T) {
		t.Parallel()

		result := assessWith(t, map[Parameter]*float64{
			ParamPlatelets: ptr(80_000.0),
		})

		assertContains(t, Correlations(result), "Thrombocytopenia (risk of bleeding disorders).")
	})

	t.Run("normal panel yields no hints", func(t *testing.T) {
		t.Parallel()

		result := assessWith(t, map[Parameter]*float64{
			ParamHemoglobin: ptr(14.0),
			ParamLeukocytes: ptr(7000.0),
		})

		if hints := Correlations(result); len(hints) != 0 {
			t.Fatalf("expected no hints, got %v", hints)
		}
	})

	t.Run("deterministic ordering", func(t *testing.T) {
		t.Parallel()

		params := map[Parameter]*float64{
			ParamHemoglobin:  ptr(9.0),
			ParamMCV:         ptr(70.0),
			ParamPlatelets:   ptr(80_000.0),
			ParamNeutrophils: ptr(95.0),
		}

		first := Correlations(assessWith(t, params))
		second := Correlations(assessWith(t, params))

		if len(first) != len(second) {
			t.Fatalf("expected stable output, got %v then %v", first, second)
		}

		for i := range first {
			if first[i] != second[i] {
				t.Fatalf("expected stable ordering, got %v then %v", first, second)
			}
		}
	})
}

func assertContains(t *testing.T, hints []string, want string) {
	t.Helper()

	for _, hint := range hints {
		if hint == want {
			return
		}
	}

	t.Fatalf("expected %q in %v", want, hints)
}
