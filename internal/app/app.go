package app

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"grow-diary/internal/config"
	"grow-diary/internal/database"
	"grow-diary/internal/lunar"
	"grow-diary/internal/services"
	"grow-diary/internal/storage"
	"grow-diary/internal/telegram"
)

type Application struct {
	config     *config.Config
	db         *database.Database
	bot        *telegram.Bot
	services   *services.ServiceManager
	cron       *cron.Cron
	cancelFunc context.CancelFunc
	ctx        context.Context
}

func New(cfg *config.Config) (*Application, error) {
	db, err := database.New(cfg.Database.Path)
	if err != nil {
		return nil, err
	}

	photos, err := storage.NewPhotoStorage(cfg.Photos.Dir)
	if err != nil {
		db.Close()
		return nil, err
	}

	resolver := lunar.NewResolver(lunar.NewChineseConverter())
	serviceManager := services.NewServiceManager(db, photos, resolver)

	bot, err := telegram.NewBot(cfg.Telegram.Token, cfg.Telegram.ChatID, serviceManager)
	if err != nil {
		db.Close()
		return nil, err
	}

	serviceManager.SetNotificationSender(bot)
	ctx, cancel := context.WithCancel(context.Background())

	app := &Application{
		config:     cfg,
		db:         db,
		bot:        bot,
		services:   serviceManager,
		cron:       cron.New(),
		cancelFunc: cancel,
		ctx:        ctx,
	}

	app.setupCronJobs()

	return app, nil
}

func (a *Application) Start() error {
	log.Println("🚀 Запуск приложения...")

	go a.bot.Start(a.ctx)

	a.cron.Start()
	time.Sleep(1 * time.Second)

	a.sendWelcomeMessage()

	log.Printf("✅ Приложение запущено. Бот: @%s", a.bot.GetUsername())

	return nil
}

func (a *Application) Stop() error {
	log.Println("🛑 Остановка приложения...")

	a.cancelFunc()
	a.cron.Stop()

	if err := a.db.Close(); err != nil {
		log.Printf("⚠️ Ошибка закрытия БД: %v", err)
	}

	log.Println("✅ Приложение остановлено")
	return nil
}

func (a *Application) setupCronJobs() {
	// Проверка напоминаний каждую минуту
	_, err := a.cron.AddFunc("* * * * *", func() {
		a.services.Notification.CheckAndSendReminders()
	})
	if err != nil {
		panic(err)
	}

	// Лунная сводка в 8:00 UTC+3
	a.cron.AddFunc("0 5 * * *", func() {
		a.services.Notification.SendLunarDigest()
	})

	// Сводка поливов на завтра в 21:00 UTC+3
	a.cron.AddFunc("0 18 * * *", func() {
		a.services.Notification.SendWateringDigest()
	})
}

func (a *Application) sendWelcomeMessage() {
	message := `🌱 <b>Дневник растениевода</b>

Ваш дневник успешно запущен!

Сегодня: ` + time.Now().UTC().Format("2006-01-02") + `

Используйте команды:
/plants - мои растения
/today - события на сегодня
/add - добавить растение
/stage - стадия растения
/water - отметить полив
/rate - оценить растение
/lunar - лунный календарь
/note - добавить заметку
/help - справка по командам`

	a.bot.SendMessage(message)
}
