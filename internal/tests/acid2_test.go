package tests

func testAcid2(table *TestTable) {
	// create top level test suite
	tS := table.NewTestSuite("acid2")

	tS.NewTestCollection("dmg-acid2").Add(&genericImageTest{
		romPath:       romFile("dmg-acid2", "dmg-acid2.gb"),
		expectedImage: romFile("dmg-acid2", "dmg-acid2-dmg.png"),
		name:          "dmg-acid2",
	})
}
