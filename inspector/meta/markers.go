package meta

// Markers configures the source-level names recognized during extraction.
// A callee matches when its dotted identity equals the configured name or
// when its last segment equals the configured name's last segment.
type Markers struct {
	// EntryType is the class-level decorator identifying a workflow
	// definition.
	EntryType string `yaml:"entryType"`
	// EntryMethod is the method-level decorator identifying the workflow
	// entry method.
	EntryMethod string `yaml:"entryMethod"`
	// SignalHandler is the method-level decorator identifying a signal
	// handler method.
	SignalHandler string `yaml:"signalHandler"`

	Activity       []string `yaml:"activity"`
	ChildWorkflow  []string `yaml:"childWorkflow"`
	ExternalSignal []string `yaml:"externalSignal"`
	Decision       []string `yaml:"decision"`
	Signal         []string `yaml:"signal"`
}

// DefaultMarkers returns the Temporal Python marker names.
func DefaultMarkers() Markers {
	return Markers{
		EntryType:      "workflow.defn",
		EntryMethod:    "workflow.run",
		SignalHandler:  "workflow.signal",
		Activity:       []string{"workflow.execute_activity", "workflow.start_activity"},
		ChildWorkflow:  []string{"workflow.execute_child_workflow", "workflow.start_child_workflow"},
		ExternalSignal: []string{"workflow.signal_external_workflow"},
		Decision:       []string{"decision_point"},
		Signal:         []string{"wait_for_signal"},
	}
}
