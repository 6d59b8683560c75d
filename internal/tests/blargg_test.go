package tests

func testBlargg(table *TestTable) {
	// create top level test suite
	tS := table.NewTestSuite("blargg")

	tS.NewTestCollection("cpu_instrs").Add(&genericImageTest{
		romPath:         romFile("blargg", "cpu_instrs", "cpu_instrs.gb"),
		expectedImage:   romFile("blargg", "cpu_instrs", "cpu_instrs-dmg-cgb.png"),
		name:            "cpu_instrs",
		emulatedSeconds: 60,
	})
	tS.NewTestCollection("instr_timing").Add(&genericImageTest{
		romPath:       romFile("blargg", "instr_timing", "instr_timing.gb"),
		expectedImage: romFile("blargg", "instr_timing", "instr_timing-dmg-cgb.png"),
		name:          "instr_timing",
	})
}

func testBully(table *TestTable) {
	table.NewTestSuite("bully").NewTestCollection("bully").Add(&genericImageTest{
		romPath:         romFile("bully", "bully.gb"),
		expectedImage:   romFile("bully", "bully.png"),
		name:            "bully",
		emulatedSeconds: 5,
	})
}
