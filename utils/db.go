package utils

import "gorm.io/gorm"

// Общий *gorm.DB: main кладет его после подключения, routes.SetupRouter раздает контроллерам
var sharedDB *gorm.DB

func SetDB(database *gorm.DB) {
	sharedDB = database
}

func GetDB() *gorm.DB {
	if sharedDB == nil {
		panic("utils.GetDB called before utils.SetDB")
	}
	return sharedDB
}
