package validator_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgvalidator "github.com/ghuser/gildedstock/pkg/validator"
)

type sampleStruct struct {
	ItemID  string `validate:"required,uuid"`
	Name    string `validate:"required,min=1,max=10"`
	SellBy  string `validate:"omitempty,datetime=2006-01-02"`
	Quality int    `validate:"min=0"`
}

func TestValidate(t *testing.T) {
	valid := sampleStruct{
		ItemID:  "550e8400-e29b-41d4-a716-446655440000",
		Name:    "banana",
		SellBy:  "2023-10-28",
		Quality: 20,
	}

	t.Run("accepts a valid struct", func(t *testing.T) {
		s := valid
		if err := pkgvalidator.Validate(&s); err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
	})

	t.Run("rejects an empty struct", func(t *testing.T) {
		s := sampleStruct{}
		if err := pkgvalidator.Validate(&s); err == nil {
			t.Fatal("expected validation error for empty struct")
		}
	})

	t.Run("rejects a negative quality", func(t *testing.T) {
		s := valid
		s.Quality = -1
		if err := pkgvalidator.Validate(&s); err == nil {
			t.Fatal("expected validation error for negative quality")
		}
	})

	t.Run("rejects a malformed date", func(t *testing.T) {
		s := valid
		s.SellBy = "soon"
		if err := pkgvalidator.Validate(&s); err == nil {
			t.Fatal("expected validation error for malformed date")
		}
	})
}

func TestFormatValidationErrors(t *testing.T) {
	t.Run("required", func(t *testing.T) {
		s := sampleStruct{}
		m := pkgvalidator.FormatValidationErrors(pkgvalidator.Validate(&s))
		if m["ItemID"] != "This field is required" {
			t.Errorf("unexpected ItemID message: %q", m["ItemID"])
		}
	})

	t.Run("uuid", func(t *testing.T) {
		s := sampleStruct{ItemID: "not-a-uuid", Name: "ok"}
		m := pkgvalidator.FormatValidationErrors(pkgvalidator.Validate(&s))
		if m["ItemID"] != "Must be a valid UUID" {
			t.Errorf("unexpected ItemID message: %q", m["ItemID"])
		}
	})

	t.Run("string max reports a length", func(t *testing.T) {
		s := sampleStruct{ItemID: "550e8400-e29b-41d4-a716-446655440000", Name: "12345678901"}
		m := pkgvalidator.FormatValidationErrors(pkgvalidator.Validate(&s))
		if m["Name"] != "Maximum length is 10" {
			t.Errorf("unexpected Name message: %q", m["Name"])
		}
	})

	t.Run("numeric min reports a bound", func(t *testing.T) {
		s := sampleStruct{ItemID: "550e8400-e29b-41d4-a716-446655440000", Name: "ok", Quality: -1}
		m := pkgvalidator.FormatValidationErrors(pkgvalidator.Validate(&s))
		if m["Quality"] != "Must be at least 0" {
			t.Errorf("unexpected Quality message: %q", m["Quality"])
		}
	})

	t.Run("datetime names the format", func(t *testing.T) {
		s := sampleStruct{ItemID: "550e8400-e29b-41d4-a716-446655440000", Name: "ok", SellBy: "soon"}
		m := pkgvalidator.FormatValidationErrors(pkgvalidator.Validate(&s))
		if m["SellBy"] != "Must be a date in 2006-01-02 format" {
			t.Errorf("unexpected SellBy message: %q", m["SellBy"])
		}
	})

	t.Run("non-validation error yields an empty map", func(t *testing.T) {
		if m := pkgvalidator.FormatValidationErrors(http.ErrNoCookie); len(m) != 0 {
			t.Errorf("expected empty map, got %v", m)
		}
	})
}

type addItemReq struct {
	Name    string `json:"name"    validate:"required,max=255"`
	SellBy  string `json:"sell_by" validate:"omitempty,datetime=2006-01-02"`
	Quality int    `json:"quality" validate:"min=0"`
}

func TestValidateRequest(t *testing.T) {
	t.Run("valid body decodes", func(t *testing.T) {
		body := `{"name":"banana","sell_by":"2023-10-28","quality":20}`
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		w := httptest.NewRecorder()

		req, ok := pkgvalidator.ValidateRequest[addItemReq](w, r)
		if !ok {
			t.Fatalf("expected ok=true. Response: %s", w.Body.String())
		}
		if req.Name != "banana" || req.Quality != 20 {
			t.Errorf("unexpected decode: %+v", req)
		}
	})

	t.Run("malformed JSON is a 400", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{bad json"))
		w := httptest.NewRecorder()

		if _, ok := pkgvalidator.ValidateRequest[addItemReq](w, r); ok {
			t.Fatal("expected ok=false for malformed JSON")
		}
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), "Invalid JSON") {
			t.Errorf("expected 'Invalid JSON' in body, got: %s", w.Body.String())
		}
	})

	t.Run("failed validation is a 422 with field messages", func(t *testing.T) {
		body := `{"sell_by":"soon","quality":-1}`
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		w := httptest.NewRecorder()

		if _, ok := pkgvalidator.ValidateRequest[addItemReq](w, r); ok {
			t.Fatal("expected ok=false")
		}
		if w.Code != http.StatusUnprocessableEntity {
			t.Errorf("expected 422, got %d", w.Code)
		}
		for _, field := range []string{"name", "sell_by", "quality"} {
			if !strings.Contains(w.Body.String(), field) {
				t.Errorf("expected %q in body, got: %s", field, w.Body.String())
			}
		}
	})
}
