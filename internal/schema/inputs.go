package schema

// Input names used in validation errors and log fields.
const (
	InputWWP       = "wwp"
	InputOpenPO    = "open_po"
	InputWorkbench = "workbench"
)

// Canonical WWP column names, post-rename.
const (
	WWPPartNumber       = "Part Number"
	WWPSiteName         = "Site Name"
	WWPCategoryCode     = "Category Code"
	WWPSpendEUR         = "Spend (EUR)"
	WWPSupplierName     = "Supplier Name"
	WWPBestPriceRegion  = "Best Price Region"
	WWPBestPriceQty     = "Best Price Quantity"
	WWPProjectionQty    = "12m Projection Quantity"
	WWPTotalOpportunity = "Total Opportunity"
)

// WWPFields is the canonical worldwide-price extract schema, as seen
// after column renaming. Only fields the filter stage reads are strict.
var WWPFields = []FieldDef{
	{Name: WWPPartNumber, Kind: Text},
	{Name: WWPSiteName, Kind: Text},
	{Name: WWPCategoryCode, Kind: Text},
	{Name: WWPSupplierName, Kind: Text},
	{Name: WWPBestPriceRegion, Kind: Text},
	{Name: WWPSpendEUR, Kind: Number, Strict: true},
	{Name: WWPTotalOpportunity, Kind: Number, Strict: true},
	{Name: WWPBestPriceQty, Kind: Number, Strict: true},
	{Name: WWPProjectionQty, Kind: Number, Strict: true},
}

// Open-PO extract column names. CURRNECY preserves a known source
// misspelling; correcting it here would break real uploads.
const (
	OPOOrderType    = "ORDER_TYPE"
	OPOLineType     = "LINE_TYPE"
	OPOItem         = "ITEM"
	OPOVendorNum    = "VENDOR_NUM"
	OPOPONum        = "PO_NUM"
	OPOReleaseNum   = "RELEASE_NUM"
	OPOLineNum      = "LINE_NUM"
	OPOShipmentNum  = "SHIPMENT_NUM"
	OPOAuthStatus   = "AUTHORIZATION_STATUS"
	OPOCreationDate = "PO_SHIPMENT_CREATION_DATE"
	OPOQtyEligible  = "QTY_ELIGIBLE_TO_SHIP"
	OPOUnitPrice    = "UNIT_PRICE"
	OPOCurrency     = "CURRNECY"
)

var OpenPOFields = []FieldDef{
	{Name: OPOOrderType, Kind: Text},
	{Name: OPOLineType, Kind: Text},
	{Name: OPOItem, Kind: Text},
	{Name: OPOVendorNum, Kind: Text},
	{Name: OPOPONum, Kind: Text},
	{Name: OPOReleaseNum, Kind: Text},
	{Name: OPOLineNum, Kind: Text},
	{Name: OPOShipmentNum, Kind: Text},
	{Name: OPOAuthStatus, Kind: Text},
	{Name: OPOCreationDate, Kind: Date, Strict: true},
	{Name: OPOQtyEligible, Kind: Number, Strict: true},
	{Name: OPOUnitPrice, Kind: Number, Strict: true},
	{Name: OPOCurrency, Kind: Text},
}

// Workbench extract column names.
const (
	WBPartNumber = "PART_NUMBER"
	WBDesc       = "DESCRIPTION"
	WBVendorNum  = "VENDOR_NUM"
	WBVendorName = "VENDOR_NAME"
	WBDandB      = "DANDB"
	WBCategory   = "STARS Category Code"
	WBASLMPN     = "ASL_MPN"
	WBUnitPrice  = "UNIT_PRICE"
	WBCurrency   = "CURRENCY_CODE"
)

var WorkbenchFields = []FieldDef{
	{Name: WBPartNumber, Kind: Text},
	{Name: WBDesc, Kind: Text},
	{Name: WBVendorNum, Kind: Text},
	{Name: WBVendorName, Kind: Text},
	{Name: WBDandB, Kind: Text},
	{Name: WBCategory, Kind: Text},
	{Name: WBASLMPN, Kind: Text},
	{Name: WBUnitPrice, Kind: Number, Strict: true},
	{Name: WBCurrency, Kind: Text},
}
