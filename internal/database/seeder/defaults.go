package seeder

// FromFixture orders seeders so accounts exist before anything references them.
func FromFixture(f Fixture) []Seeder {
	return []Seeder{
		StaffSeeder{Accounts: f.Staff},
		CompaniesSeeder{Companies: f.Companies},
		StudentsSeeder{Students: f.Students},
	}
}
