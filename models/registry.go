package models

// All liệt kê các model cần migrate, theo thứ tự phụ thuộc
func All() []interface{} {
	return []interface{}{
		&User{},
		&Building{},
		&Customer{},
		&Contract{},
		&ContractUnit{},
		&RentPeriod{},
		&ContractDocument{},
		&AuditLog{},
	}
}
