package document

// Prefix represents a document's position in the lifecycle
type Prefix string

const (
	PrefixEnquiry  Prefix = "ENQ"
	PrefixQuote    Prefix = "QUO"
	PrefixOrder    Prefix = "ORD"
	PrefixInvoice  Prefix = "INV"
	PrefixDelivery Prefix = "DEL"
	PrefixPaid     Prefix = "PAID"
)

// IsValid checks if the prefix is a known lifecycle stage
func (p Prefix) IsValid() bool {
	switch p {
	case PrefixEnquiry, PrefixQuote, PrefixOrder, PrefixInvoice, PrefixDelivery, PrefixPaid:
		return true
	}
	return false
}

// String returns the string representation of the prefix
func (p Prefix) String() string {
	return string(p)
}

// IsBinding reports whether the stage commits the business to fulfilment.
// Every transition into a binding stage carries the field and approval gates.
func (p Prefix) IsBinding() bool {
	switch p {
	case PrefixOrder, PrefixInvoice, PrefixDelivery, PrefixPaid:
		return true
	}
	return false
}

// IsTerminal reports whether the stage has no outgoing transitions
func (p Prefix) IsTerminal() bool {
	return p == PrefixPaid
}

// StageMachine answers which lifecycle transitions are allowed. The
// adjacency table is data, not scattered conditionals: every call site
// that needs to know whether a progression is legal asks this one table.
type StageMachine struct {
	edges map[Prefix][]Prefix
}

// DefaultTransitions returns the fixed lifecycle graph:
// ENQ→QUO, QUO→ORD, QUO→QUO (revision), ORD→INV, INV→DEL, DEL→PAID.
func DefaultTransitions() map[Prefix][]Prefix {
	return map[Prefix][]Prefix{
		PrefixEnquiry:  {PrefixQuote},
		PrefixQuote:    {PrefixOrder, PrefixQuote},
		PrefixOrder:    {PrefixInvoice},
		PrefixInvoice:  {PrefixDelivery},
		PrefixDelivery: {PrefixPaid},
		PrefixPaid:     {},
	}
}

// NewStageMachine builds a stage machine from an adjacency table.
// Passing nil uses the default lifecycle graph.
func NewStageMachine(edges map[Prefix][]Prefix) *StageMachine {
	if edges == nil {
		edges = DefaultTransitions()
	}
	return &StageMachine{edges: edges}
}

// IsValidTransition reports whether from→to is an edge of the lifecycle graph
func (m *StageMachine) IsValidTransition(from, to Prefix) bool {
	for _, next := range m.edges[from] {
		if next == to {
			return true
		}
	}
	return false
}

// NextPrefix returns the forward progression target for a stage, or ""
// for the terminal stage. The QUO self-loop is a revision, not a
// progression, so QUO advances to ORD.
func (m *StageMachine) NextPrefix(p Prefix) Prefix {
	for _, next := range m.edges[p] {
		if next != p {
			return next
		}
	}
	return ""
}
