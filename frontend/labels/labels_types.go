package labels

import "stocktake/frontend/shared/nav"

// ProductLabelData is one product rendered onto a label page.
type ProductLabelData struct {
	Code string
	Name string
	Unit string
}

// PageData drives the label picker page.
type PageData struct {
	Nav      nav.TopNavData
	Message  string
	Products []ProductLabelData
}
