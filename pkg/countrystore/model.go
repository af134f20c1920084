package countrystore

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/izuchukwuMcGibson/HNG-Task-2/pkg/country"
)

// CountryDao is a data access object that maps directly to the 'countries' table in PostgreSQL.
type CountryDao struct {
	bun.BaseModel   `bun:"table:countries,alias:c"`
	ID              int64      `bun:"id,pk,autoincrement"`
	Name            string     `bun:"name,notnull,type:varchar(255)"`
	NameKey         string     `bun:"name_key,unique,notnull,type:varchar(255)"`
	Capital         *string    `bun:"capital,type:varchar(255)"`
	Region          *string    `bun:"region,type:varchar(128)"`
	Population      int64      `bun:"population,notnull"`
	CurrencyCode    *string    `bun:"currency_code,type:varchar(16)"`
	ExchangeRate    *float64   `bun:"exchange_rate,type:double precision"`
	EstimatedGDP    *float64   `bun:"estimated_gdp,type:double precision"`
	FlagURL         *string    `bun:"flag_url,type:text"`
	LastRefreshedAt *time.Time `bun:"last_refreshed_at,nullzero"`
}

// toCountryDao converts a country.Country to CountryDao.
func toCountryDao(c *country.Country) *CountryDao {
	return &CountryDao{
		ID:              c.ID,
		Name:            c.Name,
		NameKey:         c.NameKey,
		Capital:         c.Capital,
		Region:          c.Region,
		Population:      c.Population,
		CurrencyCode:    c.CurrencyCode,
		ExchangeRate:    c.ExchangeRate,
		EstimatedGDP:    c.EstimatedGDP,
		FlagURL:         c.FlagURL,
		LastRefreshedAt: c.LastRefreshedAt,
	}
}

// toCountry converts a CountryDao to country.Country.
func toCountry(dao *CountryDao) *country.Country {
	return &country.Country{
		ID:              dao.ID,
		Name:            dao.Name,
		NameKey:         dao.NameKey,
		Capital:         dao.Capital,
		Region:          dao.Region,
		Population:      dao.Population,
		CurrencyCode:    dao.CurrencyCode,
		ExchangeRate:    dao.ExchangeRate,
		EstimatedGDP:    dao.EstimatedGDP,
		FlagURL:         dao.FlagURL,
		LastRefreshedAt: dao.LastRefreshedAt,
	}
}

func toCountries(daos []CountryDao) []*country.Country {
	countries := make([]*country.Country, len(daos))
	for i := range daos {
		countries[i] = toCountry(&daos[i])
	}
	return countries
}
