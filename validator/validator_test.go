package validator

import (
	"testing"

	"leasedesk/constants"
	"leasedesk/dto"
	"leasedesk/errors"
	"leasedesk/models"
	"leasedesk/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validContract() models.Contract {
	b := uint(1)
	return models.Contract{
		ContractNo: "HD-001",
		CustomerID: 1,
		StartDate:  types.MustParseDate("2024-01-01"),
		EndDate:    types.MustParseDate("2024-12-31"),
		Status:     constants.ContractStatusActive,
		Units: []models.ContractUnit{{
			BuildingID: &b,
			AreaSqm:    100,
			Periods: []models.RentPeriod{
				{StartDate: types.MustParseDate("2024-07-01"), EndDate: types.MustParseDate("2024-12-31"), RentAmount: 120},
				{StartDate: types.MustParseDate("2024-01-01"), EndDate: types.MustParseDate("2024-06-30"), RentAmount: 100},
			},
		}},
	}
}

func TestValidateContract_SortsPeriods(t *testing.T) {
	c := validContract()
	require.NoError(t, ValidateContract(&c))
	assert.Equal(t, 100.0, c.Units[0].Periods[0].RentAmount)
}

func TestValidateContract_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *models.Contract)
		code   errors.ErrorCode
	}{
		{"missing number", func(c *models.Contract) { c.ContractNo = " " }, errors.ErrCodeRequiredField},
		{"missing customer", func(c *models.Contract) { c.CustomerID = 0 }, errors.ErrCodeRequiredField},
		{"end before start", func(c *models.Contract) { c.EndDate = types.MustParseDate("2023-12-31") }, errors.ErrCodeValidation},
		{"bad status", func(c *models.Contract) { c.Status = "paused" }, errors.ErrCodeInvalidStatus},
		{"negative deposit", func(c *models.Contract) { c.DepositAmount = -1 }, errors.ErrCodeInvalidAmount},
		{"unit without building", func(c *models.Contract) { c.Units[0].BuildingID = nil }, errors.ErrCodeRequiredField},
		{"zero area", func(c *models.Contract) { c.Units[0].AreaSqm = 0 }, errors.ErrCodeValidation},
		{"overlapping periods", func(c *models.Contract) {
			c.Units[0].Periods[0].StartDate = types.MustParseDate("2024-06-30")
		}, errors.ErrCodeInvalidPeriod},
		{"inverted period", func(c *models.Contract) {
			c.Units[0].Periods[1].EndDate = types.MustParseDate("2023-01-01")
		}, errors.ErrCodeInvalidPeriod},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validContract()
			tt.mutate(&c)
			err := ValidateContract(&c)
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, tt.code), err.Error())
		})
	}
}

func TestValidateContract_DirectBuildingAccepted(t *testing.T) {
	c := validContract()
	direct := uint(9)
	c.Units[0].BuildingID = nil
	c.Units[0].DirectBuildingID = &direct
	assert.NoError(t, ValidateContract(&c))
}

func TestValidateCustomer(t *testing.T) {
	c := models.Customer{Name: "ACME", Type: constants.CustomerTypeCorporate}
	assert.NoError(t, ValidateCustomer(&c))

	c.Type = "partner"
	assert.Error(t, ValidateCustomer(&c))

	c.Type = constants.CustomerTypeIndividual
	c.ContactEmail = "not-an-email"
	assert.Error(t, ValidateCustomer(&c))
}

func TestStruct_CustomRules(t *testing.T) {
	req := dto.CreateContractRequest{ContractNo: "HD-1", CustomerID: 1, Status: "bogus"}
	err := Struct(req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "contractstatus")

	req.Status = constants.ContractStatusDraft
	assert.NoError(t, Struct(req))
}
