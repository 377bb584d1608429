package admissibility

import (
	"fmt"

	"github.com/aurelienfalco/hrank/cluster"
)

// TallSkinny enables rectangular leaf blocks: a pair is admissible on the
// rows axis when rows is at least Ratio times smaller than cols, and
// symmetrically for columns. It composes alongside StandardHackbusch as an
// additional trait rather than replacing it.
type TallSkinny struct {
	Ratio float64
}

// IsRowsColsAdmissible returns (rowsOK, colsOK): rowsOK when
// rows.Size()*Ratio <= cols.Size(), colsOK symmetrically.
func (t *TallSkinny) IsRowsColsAdmissible(rows, cols *cluster.IndexSet) (bool, bool) {
	rowsOK := float64(rows.Size())*t.Ratio <= float64(cols.Size())
	colsOK := float64(cols.Size())*t.Ratio <= float64(rows.Size())
	return rowsOK, colsOK
}

// Describe reports the condition's parameters for diagnostic logging.
func (t *TallSkinny) Describe() string {
	return fmt.Sprintf("TallSkinny(ratio=%g)", t.Ratio)
}
