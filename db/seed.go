package db

import (
	"gorm.io/gorm"

	"gameclub/models"
	"gameclub/utils"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

// Seed fills the reference tables the first time the schema is created.
// It does nothing once any category exists.
func Seed(conn *gorm.DB) error {
	var count int64
	if err := conn.Model(&models.GameCategory{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return conn.Transaction(func(tx *gorm.DB) error {
		equipment := []models.Equipment{
			{Name: "Игральные кости (6-гранные)", Type: "Кости", Quantity: 100},
			{Name: "Игровой таймер", Type: "Таймер", Quantity: 10},
			{Name: "Игровой коврик", Type: "Аксессуар", Quantity: 5},
			{Name: "Фишки (набор)", Type: "Фишки", Quantity: 50},
		}
		categories := []models.GameCategory{
			{Name: "Стратегия", Description: "Игры, требующие стратегического мышления"},
			{Name: "Семейная", Description: "Игры для всей семьи"},
			{Name: "Кооператив", Description: "Совместные игры"},
			{Name: "Карточная", Description: "Карточные игры"},
			{Name: "Партийная", Description: "Легкие игры для компании"},
		}
		publishers := []models.Publisher{
			{Name: "Hobby World", Country: "Россия", FoundedYear: intPtr(2009), Website: "https://www.hobbyworld.ru"},
			{Name: "Cosmodrome Games", Country: "Россия", FoundedYear: intPtr(2011), Website: "https://cosmodrome.games"},
			{Name: "Days of Wonder", Country: "США", FoundedYear: intPtr(2002), Website: "https://www.daysofwonder.com"},
		}
		venues := []models.Venue{
			{Name: "Игротека на Арбате", Address: "ул. Арбат, д. 10", Capacity: 30, Phone: "+7(495)123-45-67", RentalCostPerHour: floatPtr(500)},
			{Name: "Антикафе Таймкод", Address: "Ленинский пр-т, д. 5", Capacity: 20, Phone: "+7(495)234-56-78", RentalCostPerHour: floatPtr(300)},
			{Name: "Клуб настольных игр Мосигра", Address: "пр-т Мира, д. 33", Capacity: 50, Phone: "+7(495)345-67-89", RentalCostPerHour: floatPtr(800)},
		}
		for _, batch := range []interface{}{&equipment, &categories, &publishers, &venues} {
			if err := tx.Create(batch).Error; err != nil {
				return err
			}
		}

		hobbyWorld, cosmodrome := &publishers[0].ID, &publishers[1].ID
		games := []models.Game{
			{Name: "Манчкин", Description: "Пародийная карточная игра на тему фэнтези-подземелий. Убивай монстров, предавай друзей, хватай сокровища!", MinPlayers: 3, MaxPlayers: 6, AverageDuration: 60, Complexity: intPtr(3), MinAge: intPtr(10), YearPublished: intPtr(2001), PublisherID: hobbyWorld},
			{Name: "Имаджинариум", Description: "Российская игра на ассоциации с красивыми иллюстрациями. Придумывай ассоциации к картинкам!", MinPlayers: 4, MaxPlayers: 7, AverageDuration: 45, Complexity: intPtr(2), MinAge: intPtr(12), YearPublished: intPtr(2011), PublisherID: hobbyWorld},
			{Name: "Взрывные котята", Description: "Весёлая карточная игра в русскую рулетку с котятами, лазерами и козами", MinPlayers: 2, MaxPlayers: 5, AverageDuration: 15, Complexity: intPtr(1), MinAge: intPtr(7), YearPublished: intPtr(2015), PublisherID: hobbyWorld},
			{Name: "Кодовые имена", Description: "Командная игра на ассоциации и дедукцию. Угадывай слова по намёкам капитана!", MinPlayers: 4, MaxPlayers: 8, AverageDuration: 15, Complexity: intPtr(2), MinAge: intPtr(10), YearPublished: intPtr(2015), PublisherID: cosmodrome},
			{Name: "Колонизаторы", Description: "Классическая стратегия о колонизации острова Катан. Торгуй, строй, побеждай!", MinPlayers: 3, MaxPlayers: 4, AverageDuration: 75, Complexity: intPtr(6), MinAge: intPtr(10), YearPublished: intPtr(1995), PublisherID: hobbyWorld},
			{Name: "Элиас", Description: "Популярная игра в объяснение слов. Объясняй слова, не используя однокоренные!", MinPlayers: 4, MaxPlayers: 12, AverageDuration: 45, Complexity: intPtr(1), MinAge: intPtr(7), YearPublished: intPtr(1993), PublisherID: cosmodrome},
			{Name: "Uno", Description: "Знаменитая карточная игра. Избавься от всех карт первым!", MinPlayers: 2, MaxPlayers: 10, AverageDuration: 30, Complexity: intPtr(1), MinAge: intPtr(7), YearPublished: intPtr(1971), PublisherID: cosmodrome},
			{Name: "Каркассон", Description: "Игра на выкладывание тайлов средневекового французского ландшафта", MinPlayers: 2, MaxPlayers: 5, AverageDuration: 40, Complexity: intPtr(4), MinAge: intPtr(8), YearPublished: intPtr(2000), PublisherID: hobbyWorld},
		}
		for i := range games {
			games[i].Version = 1
		}
		if err := tx.Omit("Publisher").Create(&games).Error; err != nil {
			return err
		}

		// game index -> category index
		pairs := [][2]int{{0, 3}, {1, 4}, {2, 3}, {3, 4}, {4, 0}, {5, 4}, {6, 3}, {7, 0}}
		assignments := make([]models.GameCategoryAssignment, 0, len(pairs))
		for _, p := range pairs {
			assignments = append(assignments, models.GameCategoryAssignment{
				GameID:         games[p[0]].ID,
				GameCategoryID: categories[p[1]].ID,
			})
		}
		if err := tx.Create(&assignments).Error; err != nil {
			return err
		}

		utils.LogInfo("Seed data inserted", map[string]interface{}{
			"games":      len(games),
			"categories": len(categories),
		})
		return nil
	})
}
