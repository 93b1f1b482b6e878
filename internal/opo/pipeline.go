// Package opo implements the Open PO analysis pipeline: the open
// purchase order extract is joined with the pricing workbench on part
// number and vendor, prices are converted to EUR, and per-line price
// deltas are rolled up into impact insights.
package opo

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/openprocure/procdash/internal/chart"
	"github.com/openprocure/procdash/internal/fx"
	"github.com/openprocure/procdash/internal/insight"
	"github.com/openprocure/procdash/internal/schema"
	"github.com/openprocure/procdash/internal/table"
)

// Only inventory lines take part in the analysis; service and freight
// lines are excluded before the join.
const inventoryLineType = "Inventory"

// Column names of the joined record set. Both inputs call their price
// column UNIT_PRICE, so each side is disambiguated before the join.
const (
	ColUnitPriceOPO    = "UNIT_PRICE_OPO"
	ColUnitPriceWB     = "UNIT_PRICE_WB"
	ColVendorDUNS      = "VENDOR_DUNS"
	ColCurrencyWB      = "CURRENCY_CODE_WB"
	ColCurrencyOPO     = "CURRENCY_CODE_OPO"
	ColIGOG            = "IG/OG"
	ColPOYear          = "PO Year"
	ColUnitPriceWBEUR  = "UNIT_PRICE_WB_EUR"
	ColUnitPriceOPOEUR = "UNIT_PRICE_OPO_EUR"
	ColPriceDelta      = "Price_Delta"
	ColImpact          = "Impact in Euros"
	ColOpenPOValue     = "Open PO Value"
)

// Insights is the whole-set summary for the joined record set.
type Insights struct {
	TotalImpact      float64              `json:"total_impact"`
	TotalPOValue     float64              `json:"total_po_value"`
	DistinctParts    int                  `json:"distinct_parts"`
	UniqueVendors    int                  `json:"unique_vendors"`
	ImpactByVendor   []insight.GroupTotal `json:"impact_by_vendor"`
	ImpactByCategory []insight.GroupTotal `json:"impact_by_category"`
}

// Result bundles everything the presentation layer needs.
type Result struct {
	Table    *table.Table
	Insights Insights
	Charts   []chart.Spec
}

type openPORecord struct {
	orderType   string
	lineType    string
	item        string
	vendorNum   string
	poNum       string
	releaseNum  string
	lineNum     string
	shipmentNum string
	authStatus  string
	createdRaw  string
	currency    string
	qtyEligible float64
	unitPrice   float64
}

type workbenchRecord struct {
	partNumber  string
	description string
	vendorNum   string
	vendorName  string
	duns        string
	category    string
	aslMPN      string
	currency    string
	unitPrice   float64
}

// joined is one enriched output row.
type joined struct {
	wb workbenchRecord
	po openPORecord

	igog    string
	created time.Time
	wbEUR   float64
	opoEUR  float64
	delta   float64
	impact  float64
	poValue float64
}

// Process joins the two extracts and computes the price-impact record
// set. Schema failures and unparseable shipment creation dates abort
// the request; an empty join result is valid.
func Process(openPO, workbench *table.Table, conv *fx.Converter) (*Result, error) {
	poRecords, err := bindOpenPO(openPO)
	if err != nil {
		return nil, err
	}
	wbRecords, err := bindWorkbench(workbench)
	if err != nil {
		return nil, err
	}

	rows, err := join(wbRecords, poRecords, conv)
	if err != nil {
		return nil, err
	}

	// Highest impact first; tie order is not guaranteed.
	sort.Slice(rows, func(i, j int) bool { return rows[i].impact > rows[j].impact })

	return &Result{
		Table:    buildTable(rows),
		Insights: buildInsights(rows),
		Charts:   buildCharts(rows),
	}, nil
}

func bindOpenPO(t *table.Table) ([]openPORecord, error) {
	t.TrimHeaders()
	t.CoerceNumeric()
	idx, err := schema.Bind(schema.InputOpenPO, t, schema.OpenPOFields)
	if err != nil {
		return nil, err
	}

	var out []openPORecord
	for i, row := range t.Rows {
		rowNum := i + 1
		if idx.Text(row, schema.OPOLineType) != inventoryLineType {
			continue
		}
		qty, qtyOK, err := idx.Number(schema.InputOpenPO, row, rowNum, schema.OPOQtyEligible)
		if err != nil {
			return nil, err
		}
		price, priceOK, err := idx.Number(schema.InputOpenPO, row, rowNum, schema.OPOUnitPrice)
		if err != nil {
			return nil, err
		}
		// Lines with no price or quantity cannot contribute to any
		// delta or value; they are skipped rather than joined as zeros.
		if !qtyOK || !priceOK {
			continue
		}
		out = append(out, openPORecord{
			orderType:   idx.Text(row, schema.OPOOrderType),
			lineType:    inventoryLineType,
			item:        idx.Text(row, schema.OPOItem),
			vendorNum:   idx.Text(row, schema.OPOVendorNum),
			poNum:       idx.Text(row, schema.OPOPONum),
			releaseNum:  idx.Text(row, schema.OPOReleaseNum),
			lineNum:     idx.Text(row, schema.OPOLineNum),
			shipmentNum: idx.Text(row, schema.OPOShipmentNum),
			authStatus:  idx.Text(row, schema.OPOAuthStatus),
			createdRaw:  idx.Text(row, schema.OPOCreationDate),
			currency:    idx.Text(row, schema.OPOCurrency),
			qtyEligible: qty,
			unitPrice:   price,
		})
	}
	return out, nil
}

func bindWorkbench(t *table.Table) ([]workbenchRecord, error) {
	t.TrimHeaders()
	t.CoerceNumeric()
	idx, err := schema.Bind(schema.InputWorkbench, t, schema.WorkbenchFields)
	if err != nil {
		return nil, err
	}

	var out []workbenchRecord
	for i, row := range t.Rows {
		rowNum := i + 1
		price, priceOK, err := idx.Number(schema.InputWorkbench, row, rowNum, schema.WBUnitPrice)
		if err != nil {
			return nil, err
		}
		if !priceOK {
			continue
		}
		out = append(out, workbenchRecord{
			partNumber:  idx.Text(row, schema.WBPartNumber),
			description: idx.Text(row, schema.WBDesc),
			vendorNum:   idx.Text(row, schema.WBVendorNum),
			vendorName:  idx.Text(row, schema.WBVendorName),
			duns:        idx.Text(row, schema.WBDandB),
			category:    idx.Text(row, schema.WBCategory),
			aslMPN:      idx.Text(row, schema.WBASLMPN),
			currency:    idx.Text(row, schema.WBCurrency),
			unitPrice:   price,
		})
	}
	return out, nil
}

// join inner-joins workbench rows against open PO lines on
// (PART_NUMBER == ITEM, VENDOR_NUM == VENDOR_NUM) and enriches every
// match. Duplicate keys on either side produce the full cross-product
// of matches for that key.
func join(wbRecords []workbenchRecord, poRecords []openPORecord, conv *fx.Converter) ([]*joined, error) {
	byKey := make(map[string][]*openPORecord)
	for i := range poRecords {
		po := &poRecords[i]
		k := joinKey(po.item, po.vendorNum)
		byKey[k] = append(byKey[k], po)
	}

	var rows []*joined
	for i := range wbRecords {
		wb := &wbRecords[i]
		for _, po := range byKey[joinKey(wb.partNumber, wb.vendorNum)] {
			j, err := enrich(wb, po, conv)
			if err != nil {
				return nil, err
			}
			rows = append(rows, j)
		}
	}
	return rows, nil
}

func joinKey(part, vendor string) string {
	return part + "\x00" + vendor
}

func enrich(wb *workbenchRecord, po *openPORecord, conv *fx.Converter) (*joined, error) {
	created, err := schema.ParseDate(po.createdRaw)
	if err != nil {
		return nil, &schema.ValidationError{
			Input: schema.InputOpenPO, Field: schema.OPOCreationDate,
			Message: err.Error(),
		}
	}

	wbEUR := conv.ToEUR(wb.unitPrice, wb.currency)
	opoEUR := conv.ToEUR(po.unitPrice, po.currency)
	delta := opoEUR - wbEUR

	return &joined{
		wb:      *wb,
		po:      *po,
		igog:    classify(wb.vendorName),
		created: created,
		wbEUR:   wbEUR,
		opoEUR:  opoEUR,
		delta:   delta,
		impact:  delta * po.qtyEligible,
		poValue: po.qtyEligible * opoEUR,
	}, nil
}

// classify labels intra-group vendors. Schneider entities and the Wuxi
// joint venture count as IG; everything else is OG.
func classify(vendorName string) string {
	upper := strings.ToUpper(vendorName)
	if strings.Contains(upper, "SCHNEIDER") || strings.Contains(upper, "WUXI") {
		return "IG"
	}
	return "OG"
}

var outputColumns = []string{
	schema.WBPartNumber,
	schema.WBDesc,
	schema.WBVendorNum,
	schema.WBVendorName,
	ColVendorDUNS,
	schema.WBCategory,
	schema.WBASLMPN,
	ColUnitPriceWB,
	ColCurrencyWB,
	schema.OPOOrderType,
	schema.OPOLineType,
	schema.OPOPONum,
	schema.OPOReleaseNum,
	schema.OPOLineNum,
	schema.OPOShipmentNum,
	schema.OPOAuthStatus,
	schema.OPOCreationDate,
	schema.OPOQtyEligible,
	ColUnitPriceOPO,
	ColCurrencyOPO,
	ColIGOG,
	ColPOYear,
	ColUnitPriceWBEUR,
	ColUnitPriceOPOEUR,
	ColPriceDelta,
	ColImpact,
	ColOpenPOValue,
}

func buildTable(rows []*joined) *table.Table {
	data := make([][]string, len(rows))
	for i, j := range rows {
		data[i] = []string{
			j.wb.partNumber,
			j.wb.description,
			j.wb.vendorNum,
			j.wb.vendorName,
			j.wb.duns,
			j.wb.category,
			j.wb.aslMPN,
			table.FormatFloat(j.wb.unitPrice),
			j.wb.currency,
			j.po.orderType,
			j.po.lineType,
			j.po.poNum,
			j.po.releaseNum,
			j.po.lineNum,
			j.po.shipmentNum,
			j.po.authStatus,
			j.po.createdRaw,
			table.FormatFloat(j.po.qtyEligible),
			table.FormatFloat(j.po.unitPrice),
			j.po.currency,
			j.igog,
			strconv.Itoa(j.created.Year()),
			table.FormatFloat(j.wbEUR),
			table.FormatFloat(j.opoEUR),
			table.FormatFloat(j.delta),
			table.FormatFloat(j.impact),
			table.FormatFloat(j.poValue),
		}
	}
	out := table.New(outputColumns, data)
	out.MarkNumeric(
		ColUnitPriceWB, schema.OPOQtyEligible, ColUnitPriceOPO,
		ColUnitPriceWBEUR, ColUnitPriceOPOEUR,
		ColPriceDelta, ColImpact, ColOpenPOValue,
	)
	return out
}

func buildInsights(rows []*joined) Insights {
	return Insights{
		TotalImpact:      insight.Sum(rows, impact),
		TotalPOValue:     insight.Sum(rows, poValue),
		DistinctParts:    insight.DistinctCount(rows, partNumber),
		UniqueVendors:    insight.DistinctCount(rows, vendorName),
		ImpactByVendor:   insight.TopN(insight.GroupSum(rows, vendorName, impact), 5),
		ImpactByCategory: insight.TopN(insight.GroupSum(rows, category, impact), 5),
	}
}

func buildCharts(rows []*joined) []chart.Spec {
	byCategory := insight.TopN(insight.GroupSum(rows, category, impact), 10)
	byVendor := insight.TopN(insight.GroupSum(rows, vendorName, impact), 10)

	byClass := insight.GroupSum(rows, func(j *joined) string { return j.igog }, impact)
	insight.SortByKey(byClass)

	timeline := insight.GroupSum(rows, func(j *joined) string {
		return j.created.Format("2006-01-02")
	}, impact)
	insight.SortByKey(timeline)

	catLabels, catValues := split(byCategory)
	vendorLabels, vendorValues := split(byVendor)
	classLabels, classValues := split(byClass)
	timeLabels, timeValues := split(timeline)

	return []chart.Spec{
		{
			Kind: chart.HBar, Title: "Price Impact by Category (EUR)",
			XLabel: "Impact in Euros", YLabel: schema.WBCategory,
			Labels: catLabels, Values: catValues,
		},
		{
			Kind: chart.Pie, Title: "Top 10 Vendors by Price Impact",
			Labels: vendorLabels, Values: vendorValues,
		},
		{
			Kind: chart.Bar, Title: "Price Impact by IG/OG Classification",
			XLabel: ColIGOG, YLabel: "Impact in Euros",
			Labels: classLabels, Values: classValues,
		},
		{
			Kind: chart.Line, Title: "Price Impact Timeline",
			XLabel: schema.OPOCreationDate, YLabel: "Impact in Euros",
			Labels: timeLabels, Values: timeValues,
		},
	}
}

func impact(j *joined) float64 { return j.impact }
func poValue(j *joined) float64 { return j.poValue }
func partNumber(j *joined) string { return j.wb.partNumber }
func vendorName(j *joined) string { return j.wb.vendorName }
func category(j *joined) string { return j.wb.category }

func split(groups []insight.GroupTotal) ([]string, []float64) {
	labels := make([]string, len(groups))
	values := make([]float64, len(groups))
	for i, g := range groups {
		labels[i] = g.Key
		values[i] = g.Total
	}
	return labels, values
}
