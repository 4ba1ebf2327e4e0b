//go:build property

package registry

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestResolverProperties validates bracket-notation resolution invariants.
func TestResolverProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(1357)
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	reg := Default()

	nameGen := gen.RegexMatch(`[a-z][a-z0-9-]{0,15}`)

	appKeys := reg.Keys(KindApps)
	keyGen := gen.IntRange(0, len(appKeys)-1).Map(func(i int) string {
		return appKeys[i]
	})

	// Property: any bare valid name resolves to the blank skeleton under
	// that exact name.
	properties.Property("bare names resolve to blank", prop.ForAll(
		func(name string) bool {
			resolved, err := reg.Resolve(name, KindApps)
			if err != nil {
				return false
			}
			return resolved.Name == name && resolved.Template == BlankTemplate
		},
		nameGen,
	))

	// Property: name[template] always binds the given name to the given
	// catalog template, for every catalog key.
	properties.Property("bracketed inputs bind name to template", prop.ForAll(
		func(name, key string) bool {
			resolved, err := reg.Resolve(fmt.Sprintf("%s[%s]", name, key), KindApps)
			if err != nil {
				return false
			}
			return resolved.Name == name && resolved.Template == key
		},
		nameGen,
		keyGen,
	))

	// Property: [template] alone uses the template key as the name.
	properties.Property("template-only inputs name themselves", prop.ForAll(
		func(key string) bool {
			resolved, err := reg.Resolve("["+key+"]", KindApps)
			if err != nil {
				return false
			}
			return resolved.Name == key && resolved.Template == key
		},
		keyGen,
	))

	// Property: resolution is deterministic.
	properties.Property("resolution is deterministic", prop.ForAll(
		func(name, key string) bool {
			input := fmt.Sprintf("%s[%s]", name, key)
			first, err1 := reg.Resolve(input, KindApps)
			second, err2 := reg.Resolve(input, KindApps)
			if err1 != nil || err2 != nil {
				return err1 != nil && err2 != nil
			}
			return first == second
		},
		nameGen,
		keyGen,
	))

	properties.TestingRun(t)
}
