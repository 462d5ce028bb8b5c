package archimate

import "github.com/matzehuels/archispec/pkg/specif"

// SchemaReconciler decides whether a statement whose endpoint classes are
// not listed by its statement class is kept.
type SchemaReconciler interface {
	// Reconcile is called for each statement. It returns false to drop the
	// statement and may modify sc.
	Reconcile(sc *specif.StatementClass, subjectClass, objectClass string) bool
}

// NewSchemaReconciler returns the strict reconciler when strict is true and
// the extending one otherwise.
func NewSchemaReconciler(strict bool) SchemaReconciler {
	if strict {
		return strictSchema{}
	}
	return extendSchema{}
}

// extendSchema widens allow-lists to admit every observed combination.
type extendSchema struct{}

func (extendSchema) Reconcile(sc *specif.StatementClass, subjectClass, objectClass string) bool {
	if subjectClass != "" && !contains(sc.SubjectClasses, subjectClass) {
		sc.SubjectClasses = append(sc.SubjectClasses, subjectClass)
	}
	if objectClass != "" && !contains(sc.ObjectClasses, objectClass) {
		sc.ObjectClasses = append(sc.ObjectClasses, objectClass)
	}
	return true
}

// strictSchema keeps only statements whose endpoints are permitted. Empty
// allow-lists permit any class.
type strictSchema struct{}

func (strictSchema) Reconcile(sc *specif.StatementClass, subjectClass, objectClass string) bool {
	return permitted(sc.SubjectClasses, subjectClass) && permitted(sc.ObjectClasses, objectClass)
}

func permitted(list []string, class string) bool {
	return len(list) == 0 || contains(list, class)
}

// containment is a parent/child pair observed in a diagram.
type containment struct {
	diagram string
	parent  string
	child   string
}

// reconcileContainment turns queued diagram containment into statements.
// An explicit statement between the pair (any class except shows, either
// orientation) takes precedence: the diagram's shows statement targets it
// and no contains statement is created.
func (c *converter) reconcileContainment() {
	explicit := func(s *specif.Statement) bool { return s.Class != StatementShows }
	for _, p := range c.containment {
		if !c.resources.has(p.parent) || !c.resources.has(p.child) {
			continue
		}
		target, ok := c.statements.Between(p.parent, p.child, explicit)
		if !ok {
			target, _ = c.statements.Add(specif.Statement{
				Class:     StatementContains,
				Subject:   p.parent,
				Object:    p.child,
				ChangedAt: c.opts.FileDate,
			})
		}
		c.statements.Add(specif.Statement{
			Class:     StatementShows,
			Subject:   p.diagram,
			Object:    target.ID,
			ChangedAt: c.opts.FileDate,
		})
	}
}

// reconcileSchema checks every statement against its class's allow-lists.
// Shows statements are exempt.
func (c *converter) reconcileSchema() {
	c.statements.Each(func(s *specif.Statement) {
		if s.Class == StatementShows {
			return
		}
		subject, ok := c.resources.get(s.Subject)
		if !ok {
			return
		}
		objectClass := ""
		if o, ok := c.resources.get(s.Object); ok {
			objectClass = o.Class
		} else if !c.statements.Has(s.Object) {
			return
		}
		sc := c.schema.statementClass(s.Class)
		if sc == nil {
			sc = c.schema.ensureStatementClass(s.Class, c.opts.FileDate)
		}
		if !c.reconciler.Reconcile(sc, subject.Class, objectClass) {
			c.statements.Remove(s.ID)
			c.warn(WarnSchemaViolation, s.ID, "statement endpoints not permitted by its class",
				"class", s.Class, "subject", subject.Class, "object", objectClass)
		}
	})
}
