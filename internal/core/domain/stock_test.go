package domain

import (
	"errors"
	"testing"
)

func TestStockListAppend(t *testing.T) {
	original := StockList{
		{MedicationName: "Paracétamol 500mg", Quantity: 50, Price: 120, Available: true},
	}

	t.Run("appends at the end", func(t *testing.T) {
		next, err := original.Append(StockItem{MedicationName: "Ibuprofène 400mg", Quantity: 30, Price: 250, Available: true})
		if err != nil {
			t.Fatalf("Append() error = %v", err)
		}
		if len(next) != 2 {
			t.Fatalf("len = %d, want 2", len(next))
		}
		if next[1].MedicationName != "Ibuprofène 400mg" {
			t.Errorf("last item = %q, want appended item", next[1].MedicationName)
		}
	})

	t.Run("leaves the receiver untouched", func(t *testing.T) {
		_, err := original.Append(StockItem{MedicationName: "Aspirine 500mg", Quantity: 10, Price: 200})
		if err != nil {
			t.Fatalf("Append() error = %v", err)
		}
		if len(original) != 1 {
			t.Errorf("receiver len = %d, want 1", len(original))
		}
	})

	t.Run("rejects an empty medication name", func(t *testing.T) {
		_, err := original.Append(StockItem{Quantity: 5, Price: 100})
		if !errors.Is(err, ErrEmptyMedicationName) {
			t.Errorf("err = %v, want ErrEmptyMedicationName", err)
		}
	})

	t.Run("permits a duplicate medication name", func(t *testing.T) {
		next, err := original.Append(StockItem{MedicationName: "Paracétamol 500mg", Quantity: 5, Price: 110, Available: true})
		if err != nil {
			t.Fatalf("Append() error = %v", err)
		}
		if len(next) != 2 {
			t.Errorf("len = %d, want 2", len(next))
		}
	})
}

func TestStockListUpdate(t *testing.T) {
	original := StockList{
		{MedicationName: "Paracétamol 500mg", Quantity: 50, Price: 120, Available: true},
		{MedicationName: "Ibuprofène 400mg", Quantity: 30, Price: 250, Available: true},
	}

	t.Run("patches only the given fields", func(t *testing.T) {
		qty := 0
		avail := false
		next, err := original.Update(1, StockPatch{Quantity: &qty, Available: &avail})
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if next[1].Quantity != 0 || next[1].Available {
			t.Errorf("patched item = %+v, want quantity 0 and unavailable", next[1])
		}
		if next[1].MedicationName != "Ibuprofène 400mg" || next[1].Price != 250 {
			t.Errorf("untouched fields changed: %+v", next[1])
		}
		if next[0] != original[0] {
			t.Errorf("other item changed: %+v", next[0])
		}
	})

	t.Run("leaves the receiver untouched", func(t *testing.T) {
		name := "Doliprane 1000mg"
		if _, err := original.Update(0, StockPatch{MedicationName: &name}); err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if original[0].MedicationName != "Paracétamol 500mg" {
			t.Errorf("receiver mutated: %q", original[0].MedicationName)
		}
	})

	t.Run("rejects out of range indexes", func(t *testing.T) {
		qty := 1
		for _, index := range []int{-1, 2, 100} {
			if _, err := original.Update(index, StockPatch{Quantity: &qty}); !errors.Is(err, ErrStockIndexOutOfRange) {
				t.Errorf("Update(%d) err = %v, want ErrStockIndexOutOfRange", index, err)
			}
		}
	})

	t.Run("rejects a patch that empties the name", func(t *testing.T) {
		empty := ""
		if _, err := original.Update(0, StockPatch{MedicationName: &empty}); !errors.Is(err, ErrEmptyMedicationName) {
			t.Errorf("err = %v, want ErrEmptyMedicationName", err)
		}
	})

	t.Run("rejects negative values", func(t *testing.T) {
		qty := -1
		if _, err := original.Update(0, StockPatch{Quantity: &qty}); !errors.Is(err, ErrNegativeQuantity) {
			t.Errorf("err = %v, want ErrNegativeQuantity", err)
		}
		price := -0.5
		if _, err := original.Update(0, StockPatch{Price: &price}); !errors.Is(err, ErrNegativePrice) {
			t.Errorf("err = %v, want ErrNegativePrice", err)
		}
	})
}

func TestStockListRemove(t *testing.T) {
	original := StockList{
		{MedicationName: "A", Quantity: 1, Price: 1},
		{MedicationName: "B", Quantity: 2, Price: 2},
		{MedicationName: "C", Quantity: 3, Price: 3},
	}

	t.Run("preserves the order of the rest", func(t *testing.T) {
		next, err := original.Remove(1)
		if err != nil {
			t.Fatalf("Remove() error = %v", err)
		}
		if len(next) != 2 || next[0].MedicationName != "A" || next[1].MedicationName != "C" {
			t.Errorf("next = %+v, want [A C]", next)
		}
		if len(original) != 3 {
			t.Errorf("receiver len = %d, want 3", len(original))
		}
	})

	t.Run("rejects out of range indexes", func(t *testing.T) {
		for _, index := range []int{-1, 3} {
			if _, err := original.Remove(index); !errors.Is(err, ErrStockIndexOutOfRange) {
				t.Errorf("Remove(%d) err = %v, want ErrStockIndexOutOfRange", index, err)
			}
		}
	})
}

func TestStockListHasAvailable(t *testing.T) {
	t.Run("quantity does not imply availability", func(t *testing.T) {
		list := StockList{{MedicationName: "A", Quantity: 100, Price: 10, Available: false}}
		if list.HasAvailable() {
			t.Error("HasAvailable() = true for a list with only unavailable items")
		}
	})

	t.Run("a zero quantity item can still be available", func(t *testing.T) {
		list := StockList{{MedicationName: "A", Quantity: 0, Price: 10, Available: true}}
		if !list.HasAvailable() {
			t.Error("HasAvailable() = false, want true")
		}
	})

	t.Run("empty list has nothing available", func(t *testing.T) {
		if (StockList{}).HasAvailable() {
			t.Error("HasAvailable() = true for empty list")
		}
	})
}
