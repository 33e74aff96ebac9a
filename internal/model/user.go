package model

import "strings"

type PersonName struct {
	FirstName  string `gorm:"column:firstname;size:128" json:"firstname" bson:"firstname"`
	MiddleName string `gorm:"column:middlename;size:128" json:"middlename" bson:"middlename"`
	LastName   string `gorm:"column:lastname;size:128" json:"lastname" bson:"lastname"`
}

func (n PersonName) FullName() string {
	return strings.Join(strings.Fields(n.FirstName+" "+n.MiddleName+" "+n.LastName), " ")
}

// User is an employee or admin account. The super admin has no employee id.
type User struct {
	ID            uint       `gorm:"primaryKey" json:"-" bson:"-"`
	EmployeeID    string     `gorm:"size:32;index" json:"employee_id" bson:"employee_id"`
	Username      string     `gorm:"size:128;uniqueIndex;not null" json:"username" bson:"username"`
	Name          PersonName `gorm:"embedded;embeddedPrefix:name_" json:"name" bson:"name"`
	Contact       string     `gorm:"size:64" json:"contact" bson:"contact"`
	Email         string     `gorm:"size:255;index" json:"email" bson:"email"`
	BankAccountNo string     `gorm:"size:64" json:"bank_account_no" bson:"bank_account_no"`
	PasswordHash  string     `gorm:"column:password;not null" json:"-" bson:"password"`
	Role          Role       `gorm:"size:16;not null" json:"role" bson:"role"`
	IDProof       *string    `gorm:"type:text" json:"id_proof" bson:"id_proof"`
	ProfilePhoto  *string    `gorm:"type:text" json:"profile_photo" bson:"profile_photo"`
}

type UserPatch struct {
	EmployeeID    *string
	Username      *string
	Name          *PersonName
	Contact       *string
	Email         *string
	BankAccountNo *string
	PasswordHash  *string
	Role          *Role
	IDProof       *string
	ProfilePhoto  *string
}

func (p UserPatch) IsEmpty() bool {
	return p.EmployeeID == nil && p.Username == nil && p.Name == nil && p.Contact == nil &&
		p.Email == nil && p.BankAccountNo == nil && p.PasswordHash == nil && p.Role == nil &&
		p.IDProof == nil && p.ProfilePhoto == nil
}

// EmployeeSummary is the list projection of a user.
type EmployeeSummary struct {
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Contact    string `json:"contact"`
	Role       Role   `json:"role"`
}

func (u User) Summary() EmployeeSummary {
	return EmployeeSummary{
		EmployeeID: u.EmployeeID,
		Name:       u.Name.FullName(),
		Email:      u.Email,
		Contact:    u.Contact,
		Role:       u.Role,
	}
}
