package supply

import "sort"

// Cumulative is the authoritative per-product supply of one run: the
// sum of every supplier's normalized quantities, plus a per-supplier
// contribution breakdown kept only for reporting. Built once from all
// datasets, read-only afterward.
type Cumulative struct {
	totals    map[string]int
	breakdown map[string]map[string]int
}

// Aggregate group-sums the reduced records of every supplier by product
// id. Sums are commutative, so the result does not depend on supplier
// order; ProductIDs still emits keys sorted for reproducible diffs.
func Aggregate(datasets []*Dataset) *Cumulative {
	c := &Cumulative{
		totals:    make(map[string]int),
		breakdown: make(map[string]map[string]int),
	}
	for _, ds := range datasets {
		for _, r := range ds.Records {
			c.totals[r.ProductID] += r.Quantity

			perSupplier := c.breakdown[r.ProductID]
			if perSupplier == nil {
				perSupplier = make(map[string]int)
				c.breakdown[r.ProductID] = perSupplier
			}
			perSupplier[ds.Entity] += r.Quantity
		}
	}
	return c
}

// Total returns the cumulative quantity for a product id.
func (c *Cumulative) Total(id string) (int, bool) {
	total, ok := c.totals[id]
	return total, ok
}

// Contributions returns a copy of the per-supplier breakdown for a
// product id, nil when the product came from no supplier.
func (c *Cumulative) Contributions(id string) map[string]int {
	perSupplier, ok := c.breakdown[id]
	if !ok {
		return nil
	}
	out := make(map[string]int, len(perSupplier))
	for supplier, qty := range perSupplier {
		out[supplier] = qty
	}
	return out
}

// ProductIDs lists every known product id in ascending order.
func (c *Cumulative) ProductIDs() []string {
	ids := make([]string, 0, len(c.totals))
	for id := range c.totals {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len reports how many distinct products the supply covers.
func (c *Cumulative) Len() int {
	return len(c.totals)
}
