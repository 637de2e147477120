package products

import (
	"testing"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestDecimal128_RoundTrip(t *testing.T) {
	for _, s := range []string{"0.01", "0.001", "10.504", "19.99", "0.10", "1234567890.12", "10000000000", "3"} {
		d := decimal.RequireFromString(s)

		enc, err := toDecimal128(d)
		if err != nil {
			t.Fatalf("%s: encode failed: %v", s, err)
		}
		got, err := fromDecimal128(enc)
		if err != nil {
			t.Fatalf("%s: decode failed: %v", s, err)
		}
		if !got.Equal(d) {
			t.Errorf("Expected %s, got %s", d, got)
		}
	}
}

// Ten read-modify-write cycles adding 0.10 must land exactly on 1.00.
func TestDecimal128_NoDriftAcrossCycles(t *testing.T) {
	step := decimal.RequireFromString("0.10")
	current := decimal.Zero

	for i := 0; i < 10; i++ {
		enc, err := toDecimal128(current.Add(step))
		if err != nil {
			t.Fatalf("encode failed: %v", err)
		}
		if current, err = fromDecimal128(enc); err != nil {
			t.Fatalf("decode failed: %v", err)
		}
	}

	if !current.Equal(decimal.RequireFromString("1.00")) {
		t.Errorf("Expected exactly 1.00, got %s", current)
	}
}

func TestProductDocument_StoresPriceAsDecimal128(t *testing.T) {
	doc, err := toDocument(Product{Name: "Caneta", Price: decimal.RequireFromString("2.50"), Description: "azul"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	raw, err := bson.Marshal(doc)
	if err != nil {
		t.Fatalf("Expected marshal to succeed, got %v", err)
	}

	var decoded bson.M
	if err := bson.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("Expected unmarshal to succeed, got %v", err)
	}

	if _, ok := decoded["_id"]; ok {
		t.Errorf("Expected _id to be omitted so the store generates it")
	}
	if _, ok := decoded["preco"].(primitive.Decimal128); !ok {
		t.Errorf("Expected preco to be Decimal128, got %T", decoded["preco"])
	}
	if decoded["nome"] != "Caneta" || decoded["descricao"] != "azul" {
		t.Errorf("Unexpected document %v", decoded)
	}
}

func TestFromDocument(t *testing.T) {
	oid := primitive.NewObjectID()
	price, _ := primitive.ParseDecimal128("10.50")

	p, err := fromDocument(productDocument{ID: oid, Name: "Caderno", Price: price})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if p.ID != oid.Hex() {
		t.Errorf("Expected id %s, got %s", oid.Hex(), p.ID)
	}
	if p.Price.String() != "10.5" {
		t.Errorf("Expected price 10.5, got %s", p.Price.String())
	}
}

func TestParseSerial(t *testing.T) {
	tests := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"1", 1, true},
		{"9223372036854775807", 9223372036854775807, true},
		{"0", 0, false},
		{"-1", 0, false},
		{"abc", 0, false},
		{"", 0, false},
		{"65f0c0ffee65f0c0ffee65f0", 0, false},
		{"007", 0, false},
		{"+1", 0, false},
		{" 1", 0, false},
	}

	for _, tt := range tests {
		got, ok := parseSerial(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("parseSerial(%q) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestProduct_Equal(t *testing.T) {
	a := Product{ID: "1", Name: "X", Price: decimal.RequireFromString("10.5")}
	b := Product{ID: "1", Name: "X", Price: decimal.RequireFromString("10.50")}

	if !a.Equal(b) {
		t.Errorf("Expected numerically equal prices to compare equal")
	}

	b.Description = "d"
	if a.Equal(b) {
		t.Errorf("Expected different descriptions to compare unequal")
	}
}
