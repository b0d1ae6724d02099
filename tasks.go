package globber

// Task is one unit of matching work: the positive patterns after
// directory expansion plus the options they run under, with the stripped
// negation patterns carried in Options.Negative.
type Task struct {
	Patterns []string `json:"patterns"`
	Options  *Options `json:"options"`
}

// GenerateTasks normalizes and partitions the patterns without touching
// the filesystem beyond cwd resolution and the directory-existence checks
// expansion needs.
func GenerateTasks(patterns any, opts *Options) ([]Task, error) {
	req, err := newRequest(patterns, opts)
	if err != nil {
		return nil, err
	}
	o := *req.o
	o.CWD = req.cwd
	o.Negative = req.neg
	return []Task{{Patterns: req.pos, Options: &o}}, nil
}
