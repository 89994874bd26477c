package utils

import (
	"strings"
	"testing"

	"TripPlanner/internal/model/dto"
)

func TestValidateCreatePlace(t *testing.T) {
	err := ValidateStruct(dto.CreatePlaceRequest{Name: "Big Buddha"})
	if err == nil {
		t.Fatal("expected validation error for missing tripId and day")
	}

	details := ProcessValidationErrors(err)
	if details["tripId"] != "required" {
		t.Errorf("tripId rule = %v, want required", details["tripId"])
	}
	if details["day"] != "required" {
		t.Errorf("day rule = %v, want required", details["day"])
	}

	msg := ValidationMessage(err)
	if !strings.Contains(msg, "tripId is required") {
		t.Errorf("message = %q, want it to mention tripId", msg)
	}
}

func TestValidateExpenseCategory(t *testing.T) {
	req := dto.CreateExpenseRequest{
		TripID:      "t1",
		Description: "Dinner",
		Category:    "casino",
	}
	err := ValidateStruct(req)
	if err == nil {
		t.Fatal("expected error for unknown category")
	}
	if got := ProcessValidationErrors(err)["category"]; got != "expense_category" {
		t.Errorf("category rule = %v, want expense_category", got)
	}

	if !IsExpenseCategory("entrance") {
		t.Error("entrance should be a known category")
	}
}
