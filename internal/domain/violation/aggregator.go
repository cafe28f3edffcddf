// Package violation turns the checks of one failed rule into user-facing
// violations, one per distinct fix.
package violation

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/guardlens/guardlens/internal/domain"
	"github.com/guardlens/guardlens/internal/domain/guard"
	"github.com/guardlens/guardlens/internal/domain/message"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Aggregator builds violations for failed rules.
type Aggregator struct {
	// DocsBaseURL is prefixed to the rule file path, relative to RulesRoot,
	// to build the documentation link.
	DocsBaseURL string
	RulesRoot   string
	// DefaultFix is the fix used when no check of a rule carries fix text.
	DefaultFix string
	// ProjectDir anchors a relative RulesRoot and relative rule paths, so a
	// rule reached through an absolute path links the same way.
	ProjectDir string
}

// New creates an Aggregator from project settings.
func New(cfg domain.ProjectConfig) *Aggregator {
	return &Aggregator{
		DocsBaseURL: cfg.DocumentationBaseURL,
		RulesRoot:   cfg.RulesRoot,
		DefaultFix:  cfg.Fix(),
	}
}

// Outcome is the result of aggregating one rule.
type Outcome struct {
	Violations []domain.Violation
	// Skipped counts checks that carried no usable traversed.to.path.
	Skipped int
}

type group struct {
	description string
	fix         string
	resources   *orderedmap.OrderedMap[string, []string]
}

// running holds the description and fix established so far. A check without
// a custom message inherits them from earlier checks of the same rule.
type running struct {
	description    string
	hasDescription bool
	fix            string
	hasFix         bool
}

// Aggregate groups rule's checks by fix. templatePath is copied onto every
// violating resource and rulePath is used for the documentation link.
func (a *Aggregator) Aggregate(rule guard.NonCompliantRule, templatePath, rulePath string) Outcome {
	var out Outcome
	checks := make([]guard.Check, 0, len(rule.Checks))
	for _, raw := range rule.Checks {
		check, ok := guard.DecodeCheck(raw)
		if !ok {
			out.Skipped++
			continue
		}
		checks = append(checks, check)
	}

	// Checks with a custom message go first so that the ones without can
	// inherit its fix and description.
	sort.SliceStable(checks, func(i, j int) bool {
		return checks[i].CustomMessage() != "" && checks[j].CustomMessage() == ""
	})

	groups := orderedmap.New[string, *group]()
	var cur running
	for _, check := range checks {
		cur.observe(check)

		fix := a.DefaultFix
		if cur.hasFix {
			fix = cur.fix
		}
		g, ok := groups.Get(fix)
		if !ok {
			g = &group{
				description: cur.description,
				fix:         fix,
				resources:   orderedmap.New[string, []string](),
			}
			groups.Set(fix, g)
		}

		location := check.Traversed.To.Path
		id := ResourceID(location)
		locations, _ := g.resources.Get(id)
		g.resources.Set(id, append(locations, location))
	}

	docURL := DocumentationURL(a.DocsBaseURL, a.anchor(a.RulesRoot), a.anchor(rulePath))
	out.Violations = make([]domain.Violation, 0, groups.Len())
	for pair := groups.Oldest(); pair != nil; pair = pair.Next() {
		g := pair.Value
		v := domain.Violation{
			RuleName:           rule.Name,
			Description:        g.description,
			Fix:                g.fix,
			RuleMetadata:       domain.RuleMetadata{DocumentationURL: docURL},
			ViolatingResources: make([]domain.ViolatingResource, 0, g.resources.Len()),
		}
		for res := g.resources.Oldest(); res != nil; res = res.Next() {
			v.ViolatingResources = append(v.ViolatingResources, domain.ViolatingResource{
				ResourceLogicalID: res.Key,
				Locations:         res.Value,
				TemplatePath:      templatePath,
			})
		}
		out.Violations = append(out.Violations, v)
	}
	return out
}

// anchor joins a relative path onto ProjectDir. Without a ProjectDir paths
// are left as given.
func (a *Aggregator) anchor(path string) string {
	if a.ProjectDir == "" || path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(a.ProjectDir, path)
}

func (r *running) observe(check guard.Check) {
	if custom := check.CustomMessage(); custom != "" {
		p := message.Parse(custom)
		if p.HasFix {
			r.fix, r.hasFix = p.Fix, true
		}
		if p.HasDescription {
			r.description, r.hasDescription = p.Description, true
		}
	}
	if !r.hasDescription {
		if e := check.ErrorMessage(); e != "" {
			r.description, r.hasDescription = e, true
		}
	}
}

// ResourceID returns the logical id in a /Resources/<id>/... path, or "" when
// the path is shorter than that.
func ResourceID(path string) string {
	parts := strings.SplitN(path, "/", 4)
	if len(parts) < 3 {
		return ""
	}
	return parts[2]
}
