package domain

// StockItem is one medication entry in a pharmacy's stock list. Available is
// independently settable from Quantity; the two are not reconciled.
type StockItem struct {
	MedicationName string  `json:"medication_name"`
	Quantity       int     `json:"quantity"`
	Price          float64 `json:"price"`
	Available      bool    `json:"available"`
}

// StockPatch enumerates the updatable fields of a stock item. Nil fields are
// left untouched.
type StockPatch struct {
	MedicationName *string  `json:"medication_name,omitempty"`
	Quantity       *int     `json:"quantity,omitempty"`
	Price          *float64 `json:"price,omitempty"`
	Available      *bool    `json:"available,omitempty"`
}

// StockList is an ordered stock list. Insertion order is significant for
// display only. All mutation methods return a new list and leave the
// receiver untouched, so a failed remote commit keeps the pre-mutation value.
type StockList []StockItem

// Validate checks every item of the list.
func (l StockList) Validate() error {
	for _, item := range l {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks a single stock item.
func (i StockItem) Validate() error {
	if i.MedicationName == "" {
		return ErrEmptyMedicationName
	}
	if i.Quantity < 0 {
		return ErrNegativeQuantity
	}
	if i.Price < 0 {
		return ErrNegativePrice
	}
	return nil
}

// Append validates the item and appends it at the end of the list.
func (l StockList) Append(item StockItem) (StockList, error) {
	if err := item.Validate(); err != nil {
		return nil, err
	}
	out := make(StockList, len(l), len(l)+1)
	copy(out, l)
	return append(out, item), nil
}

// Update merges the patch into the item at index. Only fields present in the
// patch change; every other item is untouched.
func (l StockList) Update(index int, patch StockPatch) (StockList, error) {
	if index < 0 || index >= len(l) {
		return nil, ErrStockIndexOutOfRange
	}

	out := make(StockList, len(l))
	copy(out, l)

	item := out[index]
	if patch.MedicationName != nil {
		item.MedicationName = *patch.MedicationName
	}
	if patch.Quantity != nil {
		item.Quantity = *patch.Quantity
	}
	if patch.Price != nil {
		item.Price = *patch.Price
	}
	if patch.Available != nil {
		item.Available = *patch.Available
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}

	out[index] = item
	return out, nil
}

// Remove drops the item at index, preserving the relative order of the rest.
func (l StockList) Remove(index int) (StockList, error) {
	if index < 0 || index >= len(l) {
		return nil, ErrStockIndexOutOfRange
	}
	out := make(StockList, 0, len(l)-1)
	out = append(out, l[:index]...)
	return append(out, l[index+1:]...), nil
}

// HasAvailable reports whether at least one item is marked available.
func (l StockList) HasAvailable() bool {
	for _, item := range l {
		if item.Available {
			return true
		}
	}
	return false
}
