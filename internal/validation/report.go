package validation

import "errors"

// Issue is a ValidationError flattened for display or JSON output.
type Issue struct {
	// Entry is the 1-based position in an equipment list, or 0 for a site field.
	Entry    int    `json:"entry,omitempty"`
	Kind     Kind   `json:"kind"`
	Field    string `json:"field"`
	Message  string `json:"message"`
	Guidance string `json:"guidance"`
}

// Issues lists every ValidationError in err, keeping equipment list positions.
func Issues(err error) []Issue {
	if err == nil {
		return nil
	}

	if fe, ok := err.(*FleetErrors); ok {
		out := make([]Issue, 0, len(fe.Errors))
		for _, ie := range fe.Errors {
			issue := issueOf(ie.Err)
			issue.Entry = ie.Index + 1
			out = append(out, issue)
		}
		return out
	}

	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []Issue
		for _, inner := range joined.Unwrap() {
			out = append(out, Issues(inner)...)
		}
		return out
	}

	var ve ValidationError
	if errors.As(err, &ve) {
		return []Issue{issueOf(ve)}
	}
	return nil
}

func issueOf(ve ValidationError) Issue {
	return Issue{Kind: ve.Kind(), Field: ve.Field(), Message: ve.Error(), Guidance: ve.Guidance()}
}
