package invoice

// Classify tells electronic receipts apart from paper ones
func Classify(doc Document) Category {
	if containsAny(doc.Lower, electronicKeywords) {
		return CategoryElectronic
	}
	return CategoryPhysical
}
