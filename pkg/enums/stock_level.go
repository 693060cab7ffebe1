package enums

// StockLevel flags lots whose on-hand quantity sits at or below the
// configured threshold.
type StockLevel string

const (
	StockLevelLow    StockLevel = "low"
	StockLevelNormal StockLevel = "normal"
)

func (l StockLevel) String() string { return string(l) }
