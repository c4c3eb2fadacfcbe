package model

// Task - задача: название, дата сдачи и ответственный
type Task struct {
	ID           int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name         string `json:"name" gorm:"not null"`
	DeliveryDate Date   `json:"deliveryDate" gorm:"type:date;not null"`
	Responsible  string `json:"responsible" gorm:"not null"`
}

func (Task) TableName() string {
	return "tasks"
}

// Apply переносит изменяемые поля, ID остается прежним
func (t *Task) Apply(src Task) {
	t.Name = src.Name
	t.DeliveryDate = src.DeliveryDate
	t.Responsible = src.Responsible
}
