package services

import (
	"fmt"
	"strings"

	"marketscope/models"
)

// Print renders the analysis report for terminal consumption.
func (a *Analyzer) Print(r *models.Analysis) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)
	sym := a.market.CurrencySymbol

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  📊 MARKET ANALYSIS (%s)\033[0m\n", strings.ToUpper(a.market.Code))
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	if r.Error != "" {
		fmt.Printf("  \033[1;31m%s\033[0m\n\n", r.Error)
		return
	}

	fmt.Printf("\033[1;33m  Overview\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Total products analyzed : \033[1m%d\033[0m\n\n", r.TotalProducts)

	fmt.Printf("\033[1;33m  Price Statistics\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if p := r.PriceAnalysis; p != nil && p.Error == "" {
		fmt.Printf("  Average price : \033[1;32m%s %.2f\033[0m\n", sym, p.AveragePrice)
		fmt.Printf("  Median price  : \033[1;32m%s %.2f\033[0m\n", sym, p.MedianPrice)
		fmt.Printf("  Price range   : %s %.2f – %s %.2f\n", sym, p.MinPrice, sym, p.MaxPrice)
		fmt.Printf("  Std deviation : %s %.2f\n", sym, p.PriceStd)
	} else if p != nil {
		fmt.Printf("  %s\n", p.Error)
	}
	fmt.Println()

	fmt.Printf("\033[1;33m  Rating Statistics\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if rt := r.RatingAnalysis; rt != nil && rt.Error == "" {
		fmt.Printf("  Average rating : \033[1;32m%.2f ★\033[0m (%d rated)\n",
			rt.AverageRating, rt.TotalProductsWithRating)
		fmt.Printf("  High rated     : %d (%.1f%%)\n", rt.HighRatedCount, rt.HighRatedPercentage)
		fmt.Printf("  Low rated      : %d\n", rt.LowRatedCount)
	} else if rt != nil {
		fmt.Printf("  %s\n", rt.Error)
	}
	fmt.Println()

	if m := r.MerchantAnalysis; m != nil && len(m.TopMerchants) > 0 {
		fmt.Printf("\033[1;33m  Top Merchants\033[0m\n")
		fmt.Printf("  %s\n", thin)
		for i, ms := range m.TopMerchants {
			fmt.Printf("  \033[1m%d.\033[0m %-20s %.2f ★  %d products  (%s)\n",
				i+1, truncate(ms.ShopID, 18), ms.AvgRating, ms.ProductCount, ms.Platform)
		}
		fmt.Println()
	}

	if c := r.CategoryAnalysis; c != nil && len(c.CategoryStats) > 0 {
		fmt.Printf("\033[1;33m  Categories\033[0m\n")
		fmt.Printf("  %s\n", thin)
		for _, cs := range c.CategoryStats {
			bar := strings.Repeat("█", cs.ProductCount)
			fmt.Printf("  %-16s %s (%d, %d sold)\n", truncate(cs.Category, 15), bar, cs.ProductCount, cs.TotalSold)
		}
		if c.TopCategory != "" {
			fmt.Printf("  Top category by sales: \033[1m%s\033[0m\n", c.TopCategory)
		}
		fmt.Println()
	}

	if pb := r.PlatformBreakdown; pb != nil {
		fmt.Printf("\033[1;33m  Platforms\033[0m\n")
		fmt.Printf("  %s\n", thin)
		for platform, count := range pb.PlatformDistribution {
			fmt.Printf("  %-16s %d products\n", platform, count)
		}
		if pb.DominantPlatform != "" {
			fmt.Printf("  Dominant platform: \033[1m%s\033[0m\n", pb.DominantPlatform)
		}
	}

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

// PrintBestsellers renders the bestseller report.
func (f *BestsellerFinder) PrintBestsellers(r *models.BestsellerReport) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)
	sym := f.market.CurrencySymbol

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  🏆 BESTSELLER REPORT\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	if r.Error != "" {
		fmt.Printf("  \033[1;31m%s\033[0m\n\n", r.Error)
		return
	}

	fmt.Printf("\033[1;33m  Top Products\033[0m\n")
	fmt.Printf("  %s\n", thin)
	limit := len(r.TopProducts)
	if limit > 10 {
		limit = 10
	}
	for _, rp := range r.TopProducts[:limit] {
		fmt.Printf("  \033[1m%2d.\033[0m %-38s %s %8.2f  %6d sold\n",
			rp.Rank, truncate(rp.Name, 36), sym, rp.Price, rp.Sold)
	}
	fmt.Println()

	fmt.Printf("\033[1;33m  Recommendations\033[0m\n")
	fmt.Printf("  %s\n", thin)
	for _, rec := range r.Recommendations {
		fmt.Printf("  • %s\n", rec)
	}

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
