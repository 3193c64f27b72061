package plantree

//go:generate go tool stringer -type=NodeKind,PropertyKind -linecomment -output=kind_string.go

// NodeKind identifies what a node stands for.
type NodeKind int

const (
	TestPlan     NodeKind = iota // test_plan
	HTTPDefaults                 // http_defaults
	Variables                    // variables
	ThreadGroup                  // thread_group
	Sampler                      // sampler
	Extractor                    // extractor
	Assertion                    // assertion
	Loop                         // loop
	Timer                        // timer
	Delay                        // delay
	Headers                      // headers
)

// PropertyKind identifies the type held by a Value.
type PropertyKind int

const (
	KindString PropertyKind = iota // string
	KindBool                       // bool
	KindInt                        // int
	KindObject                     // object
	KindList                       // list
)
