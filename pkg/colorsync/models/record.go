package models

// ExtractedRecord holds the product attributes found on one sheet.
type ExtractedRecord struct {
	// ItemName is the value next to the last "Item Name" label, verbatim.
	ItemName string `json:"item_name"`
	// ItemNameTrimmed is ItemName without leading or trailing whitespace.
	ItemNameTrimmed string `json:"item_name_trimmed"`
	// SKU is the value next to the last eligible "SKU" label.
	SKU string `json:"sku"`
	// Colors lists non-blank values found below "COLOR NAME" labels, in scan order.
	Colors []string `json:"colors,omitempty"`
}
