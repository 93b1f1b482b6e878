// Package wwp implements the Worldwide Price analysis pipeline: a
// single supplier-price extract is normalized, filtered against the
// India-sourcing criteria, enriched with the quantity/projection ratio,
// and aggregated into savings-opportunity insights.
package wwp

import (
	"strings"

	"github.com/openprocure/procdash/internal/chart"
	"github.com/openprocure/procdash/internal/insight"
	"github.com/openprocure/procdash/internal/schema"
	"github.com/openprocure/procdash/internal/table"
)

// Derived column names appended to the processed record set.
const (
	ColQtyProjection  = "Qty/projection"
	ColAbsOpportunity = "Absolute Opportunity"
)

// RenameMapping maps the raw CPR export headers to canonical names.
// Unmapped columns pass through unchanged.
var RenameMapping = map[string]string{
	"Part Number (Standardized)":                            "Part Number",
	"Supplier DUNS Elementary Code":                         "DUNS Elementary Code",
	"Next 12m Projection Quantity (Normalized UoM)":         schema.WWPProjectionQty,
	"Line Price (EUR/NUoM) (Includes SQL FX)":               "Unit Price in Euros",
	"CPR:Best Line Price (including Logistics Simulation Delta if any) (EUR/NUoM) (Global)": "Best Price in Euros",
	"CPR:Quantity of Best Price Line (NUoM) (Global)":       schema.WWPBestPriceQty,
	"CPR:Site Name of Best Price Line (Global)":             "Best Price Site",
	"CPR:Site Region of Best Price Line (Global)":           schema.WWPBestPriceRegion,
	"CPR:Supplier Name of Best Price Line (Global)":         "Best Price Supplier",
	"CPR:Total Opportunity (EUR), including Logistics Simulation (Global)": schema.WWPTotalOpportunity,
}

// Rules are the filter constants, injected from configuration.
type Rules struct {
	Sites            []string
	CategoryPrefixes []string
	MinSpend         float64
	ExcludedRegion   string
	MaxOpportunity   float64
	MinQtyProjection float64
}

// Insights is the whole-set summary for the processed record set.
type Insights struct {
	TotalOpportunity float64              `json:"total_opportunity"`
	AvgQtyProjection float64              `json:"avg_qty_projection"`
	Parts            int                  `json:"parts"`
	Suppliers        int                  `json:"suppliers"`
	TopSuppliers     []insight.GroupTotal `json:"top_suppliers"`
	TopCategories    []insight.GroupTotal `json:"top_categories"`
}

// Result bundles everything the presentation layer needs.
type Result struct {
	Table    *table.Table
	Insights Insights
	Charts   []chart.Spec
}

// record is one canonical row with the typed fields the filters read.
type record struct {
	row      []string
	supplier string
	category string

	opportunity float64
	ratio       float64
	absOpp      float64
}

// Process runs the full WWP pipeline over an uploaded extract. An empty
// result is valid and carries a zeroed summary; only schema failures
// return an error.
func Process(t *table.Table, rules Rules) (*Result, error) {
	t.TrimHeaders()
	t.Rename(RenameMapping)
	t.CoerceNumeric()

	idx, err := schema.Bind(schema.InputWWP, t, schema.WWPFields)
	if err != nil {
		return nil, err
	}

	sites := make(map[string]struct{}, len(rules.Sites))
	for _, s := range rules.Sites {
		sites[s] = struct{}{}
	}

	var kept []record
	for i, row := range t.Rows {
		rowNum := i + 1

		spend, spendOK, err := idx.Number(schema.InputWWP, row, rowNum, schema.WWPSpendEUR)
		if err != nil {
			return nil, err
		}
		opp, oppOK, err := idx.Number(schema.InputWWP, row, rowNum, schema.WWPTotalOpportunity)
		if err != nil {
			return nil, err
		}
		bestQty, bestQtyOK, err := idx.Number(schema.InputWWP, row, rowNum, schema.WWPBestPriceQty)
		if err != nil {
			return nil, err
		}
		projQty, projQtyOK, err := idx.Number(schema.InputWWP, row, rowNum, schema.WWPProjectionQty)
		if err != nil {
			return nil, err
		}

		// Phase 1: bulk predicates. Null numerics cannot satisfy a
		// threshold, so rows with missing spend or opportunity drop out
		// here rather than erroring.
		if _, ok := sites[idx.Text(row, schema.WWPSiteName)]; !ok {
			continue
		}
		category := idx.Text(row, schema.WWPCategoryCode)
		if !hasAnyPrefix(category, rules.CategoryPrefixes) {
			continue
		}
		if !spendOK || spend <= rules.MinSpend {
			continue
		}
		if idx.Text(row, schema.WWPBestPriceRegion) == rules.ExcludedRegion {
			continue
		}
		if !oppOK || opp > rules.MaxOpportunity {
			continue
		}

		// Phase 2: quantity/projection ratio. A zero or missing
		// projection quantity leaves the ratio undefined; such rows are
		// filtered out rather than carried as a marker value.
		if !bestQtyOK || !projQtyOK || projQty == 0 {
			continue
		}
		ratio := bestQty / projQty * 100
		if ratio <= rules.MinQtyProjection {
			continue
		}

		absOpp := opp
		if absOpp < 0 {
			absOpp = -absOpp
		}
		kept = append(kept, record{
			row:         row,
			supplier:    idx.Text(row, schema.WWPSupplierName),
			category:    category,
			opportunity: opp,
			ratio:       ratio,
			absOpp:      absOpp,
		})
	}

	out := buildTable(t, kept)
	return &Result{
		Table:    out,
		Insights: buildInsights(kept),
		Charts:   buildCharts(kept),
	}, nil
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func buildTable(src *table.Table, kept []record) *table.Table {
	columns := make([]string, len(src.Columns))
	copy(columns, src.Columns)
	rows := make([][]string, len(kept))
	ratios := make([]string, len(kept))
	absOpps := make([]string, len(kept))
	for i, r := range kept {
		rows[i] = r.row
		ratios[i] = table.FormatFloat(r.ratio)
		absOpps[i] = table.FormatFloat(r.absOpp)
	}
	out := table.New(columns, rows)
	copy(out.Numeric, src.Numeric)
	out.AddColumn(ColQtyProjection, true, ratios)
	out.AddColumn(ColAbsOpportunity, true, absOpps)
	return out
}

func buildInsights(kept []record) Insights {
	return Insights{
		TotalOpportunity: insight.Sum(kept, opportunity),
		AvgQtyProjection: insight.Mean(kept, ratio),
		Parts:            len(kept),
		Suppliers:        insight.DistinctCount(kept, supplier),
		TopSuppliers:     insight.TopN(insight.GroupSum(kept, supplier, absOpp), 5),
		TopCategories:    insight.TopN(insight.GroupSum(kept, category, absOpp), 5),
	}
}

func buildCharts(kept []record) []chart.Spec {
	byCategory := insight.GroupSum(kept, category, absOpp)
	// The category chart reads bottom-up, smallest bar first.
	reverse(byCategory)
	topSuppliers := insight.TopN(insight.GroupSum(kept, supplier, absOpp), 10)

	catLabels, catValues := split(byCategory)
	supLabels, supValues := split(topSuppliers)

	return []chart.Spec{
		{
			Kind: chart.HBar, Title: "Savings Opportunity by Category (EUR)",
			XLabel: "Savings Opportunity (EUR)", YLabel: "Category Code",
			Labels: catLabels, Values: catValues,
		},
		{
			Kind: chart.Pie, Title: "Top 10 Suppliers by Savings Opportunity",
			Labels: supLabels, Values: supValues,
		},
		{
			Kind: chart.Bar, Title: "Top 10 Suppliers by Savings Opportunity (EUR)",
			XLabel: "Supplier Name", YLabel: "Savings Opportunity (EUR)",
			Labels: supLabels, Values: supValues,
		},
	}
}

func supplier(r record) string { return r.supplier }
func category(r record) string { return r.category }
func absOpp(r record) float64 { return r.absOpp }
func ratio(r record) float64 { return r.ratio }
func opportunity(r record) float64 { return r.opportunity }

func reverse(groups []insight.GroupTotal) {
	for i, j := 0, len(groups)-1; i < j; i, j = i+1, j-1 {
		groups[i], groups[j] = groups[j], groups[i]
	}
}

func split(groups []insight.GroupTotal) ([]string, []float64) {
	labels := make([]string, len(groups))
	values := make([]float64, len(groups))
	for i, g := range groups {
		labels[i] = g.Key
		values[i] = g.Total
	}
	return labels, values
}
