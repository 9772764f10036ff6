package tools

import "context"

// ValidationResult is the combined outcome of the two validation checks.
//
// Passed reflects only the strict checker. Lint issues are expected right
// after an automated cleanup (removed imports shift line counts, unused
// suppressions surface) and are advisory.
type ValidationResult struct {
	// Linting is the lenient linter's result.
	Linting *Result `json:"linting"`

	// TypeCheck is the strict type/compile checker's result.
	TypeCheck *Result `json:"typeCheck"`

	// Passed is true iff the strict checker passed.
	Passed bool `json:"passed"`
}

// Validator runs the lenient linter and the strict checker in sequence.
type Validator struct {
	runner  *Runner
	linter  []string
	checker []string
}

// NewValidator creates a Validator around the given commands.
func NewValidator(runner *Runner, linter, checker []string) *Validator {
	return &Validator{runner: runner, linter: linter, checker: checker}
}

// Validate runs both checks and combines their results. The error return
// is non-nil only when a check cannot be launched, which is fatal to the
// validation phase.
func (v *Validator) Validate(ctx context.Context) (*ValidationResult, error) {
	linting, err := v.runner.Run(ctx, "linter", v.linter)
	if err != nil {
		return nil, err
	}

	typeCheck, err := v.runner.Run(ctx, "checker", v.checker)
	if err != nil {
		return nil, err
	}

	return &ValidationResult{
		Linting:   linting,
		TypeCheck: typeCheck,
		Passed:    typeCheck.Passed(),
	}, nil
}
