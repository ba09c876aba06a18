package config

type Kaggle struct {
	// Username и Key — учётные данные Kaggle API. Без них загрузка
	// работает только из локального кеша.
	Username string `env:"KAGGLE_USERNAME"`
	Key      string `env:"KAGGLE_KEY" json:"-"`

	BaseURL     string `env:"KAGGLE_BASE_URL" envDefault:"https://www.kaggle.com/api/v1"`
	Dataset     string `env:"KAGGLE_DATASET" envDefault:"lava18/google-play-store-apps"`
	DatasetFile string `env:"KAGGLE_DATASET_FILE" envDefault:"googleplaystore.csv"`
	CacheDir    string `env:"DATASET_CACHE_DIR" envDefault:"./data"`
}
