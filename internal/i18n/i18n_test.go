package i18n

import "testing"

func TestLocalize(t *testing.T) {
	b, err := NewBundle()
	if err != nil {
		t.Fatalf("NewBundle failed: %v", err)
	}

	id := b.Localizer("id")
	if got := id.T("sales.created"); got != "Penjualan berhasil dibuat" {
		t.Errorf("id sales.created = %q", got)
	}

	en := b.Localizer("en")
	if got := en.T("sales.created"); got != "Sale created successfully" {
		t.Errorf("en sales.created = %q", got)
	}
}

func TestLocalizeDefaultsToIndonesian(t *testing.T) {
	b, err := NewBundle()
	if err != nil {
		t.Fatalf("NewBundle failed: %v", err)
	}

	loc := b.Localizer()
	if got := loc.T("inventory.negative_stock_error"); got != "Stok tidak mencukupi untuk penyesuaian ini" {
		t.Errorf("default locale = %q", got)
	}
}

func TestLocalizeUnknownKeyFallsBackToKey(t *testing.T) {
	b, err := NewBundle()
	if err != nil {
		t.Fatalf("NewBundle failed: %v", err)
	}

	loc := b.Localizer("id")
	if got := loc.T("no.such.key"); got != "no.such.key" {
		t.Errorf("unknown key = %q, want raw key", got)
	}
}
