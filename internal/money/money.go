package money

import "fmt"

// Cents é o valor monetário em centavos inteiros. Toda a engine de
// agendamento e de last-minute opera sobre este tipo; conversão para
// string de exibição só acontece na borda da API.
type Cents int64

// ApplyDiscountPct aplica um desconto percentual inteiro com
// arredondamento para o centavo mais próximo.
func (c Cents) ApplyDiscountPct(pct int) Cents {
	if pct <= 0 {
		return c
	}
	if pct >= 100 {
		return 0
	}
	return Cents((int64(c)*int64(100-pct) + 50) / 100)
}

// String formata como decimal com duas casas ("149.90").
func (c Cents) String() string {
	v := int64(c)
	neg := ""
	if v < 0 {
		neg = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", neg, v/100, v%100)
}
